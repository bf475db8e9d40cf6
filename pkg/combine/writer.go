// File: pkg/combine/writer.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Writer emits rendered blocks to the document stream.
type Writer struct {
	out    io.Writer
	logger *zap.Logger
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{out: out, logger: logger}
}

// WriteBlock writes a whole block in a single call so blocks never interleave.
func (w *Writer) WriteBlock(block RenderedBlock) error {
	if _, err := io.WriteString(w.out, block.Text); err != nil {
		w.logger.Error("Failed to write block", zap.String("contentPath", block.RelPath), zap.Error(err))
		return fmt.Errorf("failed to write %s: %w", block.RelPath, err)
	}
	w.logger.Debug("Wrote block", zap.String("contentPath", block.RelPath))
	return nil
}

// WriteTree writes the listing of relPaths that precedes the blocks.
func (w *Writer) WriteTree(relPaths []string) error {
	if _, err := io.WriteString(w.out, GenerateTree(relPaths)); err != nil {
		w.logger.Error("Failed to write tree", zap.Error(err))
		return fmt.Errorf("failed to write tree: %w", err)
	}
	return nil
}

// outputFile is a buffered document file.
type outputFile struct {
	path   string
	file   *os.File
	writer *bufio.Writer
}

// createOutputFile creates path, and any missing parent directories, for writing.
func createOutputFile(path string, logger *zap.Logger) (*outputFile, error) {
	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &outputFile{path: path, file: f, writer: bufio.NewWriter(f)}, nil
}

func (o *outputFile) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

// Close flushes buffered output and closes the file.
func (o *outputFile) Close() error {
	if err := o.writer.Flush(); err != nil {
		_ = o.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
