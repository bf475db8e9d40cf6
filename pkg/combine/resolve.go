// File: pkg/combine/resolve.go
package combine

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Resolver expands glob patterns into sets of regular files under Root.
type Resolver struct {
	Root   string // Absolute directory relative patterns are anchored to.
	logger *zap.Logger
}

// NewResolver initializes a Resolver anchored at root.
func NewResolver(root string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Root: root, logger: logger}
}

// Resolve expands every pattern and returns the union of the regular files
// they match. Patterns that match nothing contribute nothing. Supported syntax
// is that of doublestar: *, **, ?, [class], [^class] and {alt,ernatives}.
func (r *Resolver) Resolve(patterns []string) (FileSet, error) {
	files := NewFileSet()
	for _, pattern := range patterns {
		if err := r.expand(pattern, files); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// expand adds the regular files matched by a single pattern to files.
func (r *Resolver) expand(pattern string, files FileSet) error {
	matches, err := r.glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	if len(matches) == 0 {
		r.logger.Debug("Pattern matched nothing", zap.String("pattern", pattern))
		return nil
	}

	kept := 0
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			r.logger.Debug("Dropping unreadable match", zap.String("path", match), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files.Add(filepath.Clean(match))
		kept++
	}

	r.logger.Debug("Expanded pattern",
		zap.String("pattern", pattern),
		zap.Int("matches", len(matches)),
		zap.Int("regularFiles", kept))
	return nil
}

// glob returns the paths matched by pattern. Relative patterns are matched
// inside Root, which is never itself read as a pattern: a working directory
// named "proj[1]" must not behave like a character class.
func (r *Resolver) glob(pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		return doublestar.FilepathGlob(pattern)
	}

	base, rest := doublestar.SplitPattern(path.Clean(filepath.ToSlash(pattern)))
	if rest == "" || rest == "." || rest == ".." {
		// Only ever names a directory.
		return nil, nil
	}
	dir := filepath.Join(r.Root, filepath.FromSlash(unescapeMeta(base)))

	matches, err := doublestar.Glob(os.DirFS(dir), rest)
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return matches, nil
}

// unescapeMeta drops the backslash escapes a literal base directory may carry.
// Backslash is the separator on Windows, where patterns have no escapes.
func unescapeMeta(s string) string {
	if filepath.Separator == '\\' || !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
