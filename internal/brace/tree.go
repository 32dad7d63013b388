package brace

import (
	"sort"
	"strings"

	"github.com/Noziop/mkdf/internal/filesystem"
)

type treeNode struct {
	children map[string]*treeNode
	dir      bool
}

// Tree renders expanded paths as a text tree. Leaves are classified the way
// they are created on disk; directories carry a trailing slash and sort
// before files.
//
//	app/
//	├── docs/
//	└── README.md
func Tree(paths []string) string {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, p := range paths {
		node := root
		parts := strings.Split(strings.Trim(p, "/"), "/")
		for i, part := range parts {
			if part == "" {
				continue
			}
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{children: map[string]*treeNode{}}
				node.children[part] = child
			}
			if i < len(parts)-1 || filesystem.IsDirPath(p) {
				child.dir = true
			}
			node = child
		}
	}

	var b strings.Builder
	for _, name := range sortedChildren(root) {
		child := root.children[name]
		b.WriteString(label(name, child) + "\n")
		render(&b, child, "")
	}
	return strings.TrimRight(b.String(), "\n")
}

func render(b *strings.Builder, node *treeNode, indent string) {
	names := sortedChildren(node)
	for i, name := range names {
		child := node.children[name]
		branch, next := "├── ", "│   "
		if i == len(names)-1 {
			branch, next = "└── ", "    "
		}
		b.WriteString(indent + branch + label(name, child) + "\n")
		render(b, child, indent+next)
	}
}

func label(name string, n *treeNode) string {
	if n.dir {
		return name + "/"
	}
	return name
}

func sortedChildren(n *treeNode) []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, c := n.children[names[i]], n.children[names[j]]
		if a.dir != c.dir {
			return a.dir
		}
		return names[i] < names[j]
	})
	return names
}
