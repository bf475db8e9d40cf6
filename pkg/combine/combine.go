package combine

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoPatterns is returned when a run is started without include patterns.
var ErrNoPatterns = errors.New("at least one glob pattern is required")

// Run resolves the include and exclude patterns, then renders every remaining
// file in lexical order of its relative path. Files that cannot be read or
// decoded are reported on streams.Err and skipped; they do not fail the run.
func Run(opts Options, streams Streams, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if len(opts.Patterns) == 0 {
		return Result{}, ErrNoPatterns
	}

	root, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		logger.Error("Failed to resolve working directory", zap.Error(err))
		return Result{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info("Starting combination process",
		zap.String("directory", root),
		zap.Strings("patterns", opts.Patterns),
		zap.Strings("ignorePatterns", opts.IgnorePatterns))

	resolver := NewResolver(root, logger)
	included, err := resolver.Resolve(opts.Patterns)
	if err != nil {
		return Result{}, err
	}
	excluded, err := resolver.Resolve(opts.IgnorePatterns)
	if err != nil {
		return Result{}, err
	}
	selected := included.Subtract(excluded)

	out := streams.Out
	if out == nil {
		out = io.Discard
	}
	var outFile *outputFile
	if opts.Output != "" && opts.Output != "-" {
		outPath := opts.Output
		if !filepath.IsAbs(outPath) {
			outPath = filepath.Join(root, outPath)
		}
		// A previous document must never end up inside the next one.
		selected = selected.Subtract(NewFileSet(filepath.Clean(outPath)))

		if outFile, err = createOutputFile(outPath, logger); err != nil {
			return Result{}, err
		}
		out = outFile
	}

	result, err := render(selected, opts, out, streams, root, logger)
	if outFile != nil {
		err = multierr.Append(err, outFile.Close())
	}
	if err != nil {
		return result, err
	}

	logger.Info("Combination process completed",
		zap.Int("matched", included.Len()),
		zap.Int("excluded", included.Len()-selected.Len()),
		zap.Int("rendered", len(result.Rendered)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// render writes the selected files to out one block at a time.
func render(selected FileSet, opts Options, out io.Writer, streams Streams, root string, logger *zap.Logger) (Result, error) {
	renderer := NewRenderer(root, opts.IncludeLineNumbers, logger)
	writer := NewWriter(out, logger)

	errOut := streams.Err
	if errOut == nil {
		errOut = io.Discard
	}
	warner := NewWarner(errOut, streams.ColorErr)

	paths := selected.Sorted()
	relPaths := make(map[string]string, len(paths))
	for _, p := range paths {
		relPaths[p] = renderer.RelPath(p)
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return relPaths[paths[i]] < relPaths[paths[j]]
	})

	if opts.Tree {
		listing := make([]string, len(paths))
		for i, p := range paths {
			listing[i] = relPaths[p]
		}
		if err := writer.WriteTree(listing); err != nil {
			return Result{}, err
		}
	}

	var result Result
	var skipErr error
	for _, path := range paths {
		block, err := renderer.Render(path)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{RelPath: relPaths[path], Reason: err})
			skipErr = multierr.Append(skipErr, err)
			if werr := warner.Skip(relPaths[path], err); werr != nil {
				logger.Debug("Failed to write skip warning", zap.Error(werr))
			}
			continue
		}

		if err := writer.WriteBlock(block); err != nil {
			return result, err
		}
		result.Rendered = append(result.Rendered, block.RelPath)
	}

	if skipErr != nil {
		logger.Debug("Skipped files", zap.Errors("errors", multierr.Errors(skipErr)))
	}
	return result, nil
}
