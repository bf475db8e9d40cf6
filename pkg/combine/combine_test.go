package combine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// runInDir runs the pipeline in dir and returns stdout and stderr.
func runInDir(t *testing.T, dir string, opts Options) (Result, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts.WorkDir = dir
	result, err := Run(opts, Streams{Out: &stdout, Err: &stderr}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return result, stdout.String(), stderr.String()
}

func TestRunExampleScenario(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n", "b.txt": "world\n"})

	result, stdout, stderr := runInDir(t, dir, Options{Patterns: []string{"*.txt"}})

	assert.Equal(t, "# a.txt\n\n```\nhello\n```\n\n# b.txt\n\n```\nworld\n```\n\n", stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, []string{"a.txt", "b.txt"}, result.Rendered)
	assert.Empty(t, result.Skipped)

	_, stdout, _ = runInDir(t, dir, Options{Patterns: []string{"*.txt"}, IncludeLineNumbers: true})
	assert.Equal(t, "# a.txt\n\n```\n1 hello\n```\n\n# b.txt\n\n```\n1 world\n```\n\n", stdout)
}

func TestRunExclusion(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n", "b.txt": "world\n"})

	result, stdout, _ := runInDir(t, dir, Options{
		Patterns:       []string{"*.txt"},
		IgnorePatterns: []string{"b.txt"},
	})

	assert.Equal(t, []string{"a.txt"}, result.Rendered)
	assert.Equal(t, "# a.txt\n\n```\nhello\n```\n\n", stdout)
}

// A file is rendered exactly when some include pattern and no exclude pattern
// produces it.
func TestRunExclusionCorrectness(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.go":                 "package main\n",
		"main_test.go":            "package main\n",
		"README.md":               "# readme\n",
		"internal/a/a.go":         "package a\n",
		"internal/a/a_test.go":    "package a\n",
		"node_modules/x/index.go": "package x\n",
		"vendor/y/y.go":           "package y\n",
	})
	include := []string{"**/*.go", "*.md"}
	exclude := []string{"**/*_test.go", "{node_modules,vendor}/**"}

	result, _, _ := runInDir(t, dir, Options{Patterns: include, IgnorePatterns: exclude})

	var want []string
	for _, rel := range []string{
		"README.md", "internal/a/a.go", "internal/a/a_test.go", "main.go",
		"main_test.go", "node_modules/x/index.go", "vendor/y/y.go",
	} {
		if matchesAny(t, include, rel) && !matchesAny(t, exclude, rel) {
			want = append(want, rel)
		}
	}
	assert.Equal(t, []string{"README.md", "internal/a/a.go", "main.go"}, want)
	assert.Equal(t, want, result.Rendered)
}

func matchesAny(t *testing.T, patterns []string, rel string) bool {
	t.Helper()
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		require.NoError(t, err)
		if ok {
			return true
		}
	}
	return false
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":     "hello\n",
		"b/c.txt":   "nested\n",
		"b/d/e.txt": "deeper\nstill\n",
	})
	opts := Options{Patterns: []string{"**/*.txt"}, IncludeLineNumbers: true}

	_, first, _ := runInDir(t, dir, opts)
	_, second, _ := runInDir(t, dir, opts)

	assert.Equal(t, first, second)
}

func TestRunDecodeFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":   "hello\n",
		"bad.txt": "caf\xe9\n",
		"c.txt":   "world\n",
	})

	result, stdout, stderr := runInDir(t, dir, Options{Patterns: []string{"*.txt"}})

	assert.Equal(t, []string{"a.txt", "c.txt"}, result.Rendered)
	assert.Equal(t, "# a.txt\n\n```\nhello\n```\n\n# c.txt\n\n```\nworld\n```\n\n", stdout)
	assert.Equal(t, "UTF-8 decode error: skip bad.txt\n", stderr)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "bad.txt", result.Skipped[0].RelPath)
	assert.True(t, errors.Is(result.Skipped[0].Reason, ErrInvalidUTF8))
}

func TestRunReadFailureIsolation(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for this user")
	}
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n", "locked.txt": "secret\n"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked.txt"), 0))

	result, stdout, stderr := runInDir(t, dir, Options{Patterns: []string{"*.txt"}})

	assert.Equal(t, []string{"a.txt"}, result.Rendered)
	assert.Equal(t, "# a.txt\n\n```\nhello\n```\n\n", stdout)
	assert.Equal(t, "read error: skip locked.txt: permission denied\n", stderr)
}

func TestRunEmptyMatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n"})

	result, stdout, stderr := runInDir(t, dir, Options{Patterns: []string{"*.nothing"}})

	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, result.Rendered)
}

func TestRunOrdersByRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"z.txt":     "z\n",
		"a/b.txt":   "ab\n",
		"a.txt":     "a\n",
		"a/b/c.txt": "abc\n",
	})

	result, _, _ := runInDir(t, dir, Options{Patterns: []string{"**/*.txt"}})

	assert.Equal(t, []string{"a.txt", "a/b.txt", "a/b/c.txt", "z.txt"}, result.Rendered)
}

func TestRunTree(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n", "src/b.txt": "world\n"})

	_, stdout, _ := runInDir(t, dir, Options{Patterns: []string{"**/*.txt"}, Tree: true})

	want := "# Files\n\n```\n.\n├── src/\n│   └── b.txt\n└── a.txt\n```\n\n" +
		"# a.txt\n\n```\nhello\n```\n\n" +
		"# src/b.txt\n\n```\nworld\n```\n\n"
	assert.Equal(t, want, stdout)
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "hello\n", "context.md": "stale document\n"})

	result, stdout, _ := runInDir(t, dir, Options{
		Patterns: []string{"*.md"},
		Output:   "context.md",
	})

	assert.Empty(t, stdout)
	assert.Equal(t, []string{"a.md"}, result.Rendered, "the output file never includes itself")

	data, err := os.ReadFile(filepath.Join(dir, "context.md"))
	require.NoError(t, err)
	assert.Equal(t, "# a.md\n\n```\nhello\n```\n\n", string(data))
}

func TestRunOutputFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n"})

	_, _, _ = runInDir(t, dir, Options{Patterns: []string{"a.txt"}, Output: "out/nested/doc.md"})

	data, err := os.ReadFile(filepath.Join(dir, "out", "nested", "doc.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# a.txt\n"))
}

func TestRunNoPatterns(t *testing.T) {
	_, err := Run(Options{WorkDir: t.TempDir()}, Streams{}, nil)
	assert.ErrorIs(t, err, ErrNoPatterns)
}

func TestRunBadPattern(t *testing.T) {
	var stdout bytes.Buffer
	_, err := Run(Options{
		Patterns:       []string{"*.txt"},
		IgnorePatterns: []string{"{a,b"},
		WorkDir:        t.TempDir(),
	}, Streams{Out: &stdout}, nil)

	assert.ErrorIs(t, err, doublestar.ErrBadPattern)
	assert.Empty(t, stdout.String())
}

// Include and exclude patterns resolve from the same root even when the root's
// name contains glob characters.
func TestRunExclusionInGlobNamedDirectory(t *testing.T) {
	for _, name := range []string{"proj[1]", "app{v2}"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), name)
			writeFiles(t, dir, map[string]string{
				"a.txt":     "hello\n",
				"b.txt":     "world\n",
				"gen/c.txt": "generated\n",
				"src/d.txt": "source\n",
			})

			result, stdout, _ := runInDir(t, dir, Options{
				Patterns:       []string{"**/*.txt"},
				IgnorePatterns: []string{"b.txt", "gen/**"},
			})

			assert.Equal(t, []string{"a.txt", "src/d.txt"}, result.Rendered)
			assert.Equal(t, "# a.txt\n\n```\nhello\n```\n\n# src/d.txt\n\n```\nsource\n```\n\n", stdout)
		})
	}
}
