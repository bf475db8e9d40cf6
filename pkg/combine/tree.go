// File: pkg/combine/tree.go
package combine

import (
	"sort"
	"strings"
)

// treeNode is a directory or file in the listing built from relative paths.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

// GenerateTree returns a fenced listing of relPaths (slash-separated) as a
// directory tree, formatted as a block that precedes the file blocks.
func GenerateTree(relPaths []string) string {
	root := &treeNode{name: ".", children: map[string]*treeNode{}}
	for _, rel := range relPaths {
		insertPath(root, strings.Split(rel, "/"))
	}

	var treeBuilder strings.Builder
	treeBuilder.WriteString("# Files\n\n")
	treeBuilder.WriteString(Fence + "\n")
	treeBuilder.WriteString(".\n")
	writeTreeRecursively(&treeBuilder, root, "")
	treeBuilder.WriteString(Fence + "\n\n")
	return treeBuilder.String()
}

func insertPath(root *treeNode, parts []string) {
	node := root
	for i, part := range parts {
		child, ok := node.children[part]
		if !ok {
			child = &treeNode{name: part}
			node.children[part] = child
		}
		if i < len(parts)-1 && child.children == nil {
			child.children = map[string]*treeNode{}
		}
		node = child
	}
}

// writeTreeRecursively writes the children of node, directories first, then
// files, each group ordered case-insensitively.
func writeTreeRecursively(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.isDir() {
			b.WriteString("/\n")
			writeTreeRecursively(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
