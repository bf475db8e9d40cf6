// File: pkg/combine/render.go
package combine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ErrInvalidUTF8 is returned when a file's content is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Renderer reads matched files and formats them as fenced blocks.
type Renderer struct {
	Root               string // Directory displayed paths are relative to.
	IncludeLineNumbers bool
	logger             *zap.Logger
}

// NewRenderer initializes a Renderer for files under root.
func NewRenderer(root string, includeLineNumbers bool, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{Root: root, IncludeLineNumbers: includeLineNumbers, logger: logger}
}

// RelPath returns path relative to the renderer's root, using forward slashes.
func (r *Renderer) RelPath(path string) string {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		// Different volume on Windows; the base name is the best we can show
		// without leaking the absolute path.
		r.logger.Warn("Unable to determine relative path",
			zap.String("filePath", path),
			zap.String("root", r.Root),
			zap.Error(err))
		rel = filepath.Base(path)
	}
	return normalizePath(rel)
}

// Read loads and decodes a single file. The file is closed before Read returns.
func (r *Renderer) Read(path string) (FileRecord, error) {
	relPath := r.RelPath(path)

	f, err := os.Open(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("open %s: %w", relPath, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return FileRecord{}, fmt.Errorf("read %s: %w", relPath, err)
	}

	if !utf8.Valid(content) {
		return FileRecord{}, fmt.Errorf("decode %s: %w", relPath, ErrInvalidUTF8)
	}

	r.logger.Debug("Read file content",
		zap.String("filePath", relPath),
		zap.Int("contentSizeBytes", len(content)))

	return FileRecord{
		Path:    path,
		RelPath: relPath,
		Lines:   splitLines(string(content)),
	}, nil
}

// Render reads path and formats it as a block.
func (r *Renderer) Render(path string) (RenderedBlock, error) {
	rec, err := r.Read(path)
	if err != nil {
		return RenderedBlock{}, err
	}
	return RenderedBlock{
		RelPath: rec.RelPath,
		Text:    FormatBlock(rec, r.IncludeLineNumbers),
	}, nil
}

// FormatBlock lays a record out as a header, a blank line, and a fenced
// region holding its lines, followed by a blank separator line.
func FormatBlock(rec FileRecord, includeLineNumbers bool) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(rec.RelPath)
	b.WriteString("\n\n")
	b.WriteString(Fence + "\n")

	for i, line := range rec.Lines {
		if includeLineNumbers {
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(" ")
		}
		b.WriteString(line)
	}
	// The closing fence must start its own line.
	if n := len(rec.Lines); n > 0 && !strings.HasSuffix(rec.Lines[n-1], "\n") {
		b.WriteString("\n")
	}

	b.WriteString(Fence + "\n\n")
	return b.String()
}

// splitLines splits s after each newline, keeping the newline on its line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(path)
}
