package combine

import "sort"

// FileSet is a set of absolute paths to regular files.
type FileSet map[string]struct{}

// NewFileSet returns a set holding paths.
func NewFileSet(paths ...string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts path into the set.
func (s FileSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether path is in the set.
func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Len returns the number of paths in the set.
func (s FileSet) Len() int {
	return len(s)
}

// Subtract returns a new set with every path of s that is not in excluded.
// Neither operand is modified.
func (s FileSet) Subtract(excluded FileSet) FileSet {
	out := make(FileSet, len(s))
	for p := range s {
		if !excluded.Contains(p) {
			out.Add(p)
		}
	}
	return out
}

// Sorted returns the paths in lexical order.
func (s FileSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
