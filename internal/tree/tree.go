// Package tree models a project as an in-memory directory tree.
//
// Nodes live in a single arena slice and refer to each other by index, so a
// Tree is one allocation-friendly value that is cheap to walk and to compare.
// Trees are assembled with a Builder and are read-only afterwards.
package tree

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrPathConflict means one path was declared both as a file and a directory.
var ErrPathConflict = errors.New("path conflict")

// Kind distinguishes directories from files.
type Kind int

const (
	Dir Kind = iota
	File
)

func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "dir"
}

// Node is one entry of a Tree. The root node has an empty Name.
type Node struct {
	Name     string
	Kind     Kind
	Content  string
	parent   int
	children []int
}

// Tree is an immutable arena of nodes. Index 0 is the root directory.
type Tree struct {
	nodes []Node
	index map[string]int
}

// Entry is a visited node with its slash-separated path relative to the root.
type Entry struct {
	Path    string
	Kind    Kind
	Content string
}

// Len returns the number of nodes, excluding the root.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Lookup returns the node at p.
func (t *Tree) Lookup(p string) (Entry, bool) {
	i, ok := t.index[clean(p)]
	if !ok {
		return Entry{}, false
	}
	n := t.nodes[i]
	return Entry{Path: clean(p), Kind: n.Kind, Content: n.Content}, true
}

// File returns the content of the file at p.
func (t *Tree) File(p string) (string, bool) {
	e, ok := t.Lookup(p)
	if !ok || e.Kind != File {
		return "", false
	}
	return e.Content, true
}

// Walk visits every node depth-first, parents before children, siblings in
// insertion order. Returning an error stops the walk.
func (t *Tree) Walk(fn func(Entry) error) error {
	return t.walk(0, "", fn)
}

func (t *Tree) walk(i int, prefix string, fn func(Entry) error) error {
	for _, c := range t.nodes[i].children {
		n := t.nodes[c]
		p := path.Join(prefix, n.Name)
		if err := fn(Entry{Path: p, Kind: n.Kind, Content: n.Content}); err != nil {
			return err
		}
		if n.Kind == Dir {
			if err := t.walk(c, p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Entries returns the Walk order as a slice.
func (t *Tree) Entries() []Entry {
	var out []Entry
	_ = t.Walk(func(e Entry) error {
		out = append(out, e)
		return nil
	})
	return out
}

// Files returns file paths in Walk order.
func (t *Tree) Files() []string {
	var out []string
	for _, e := range t.Entries() {
		if e.Kind == File {
			out = append(out, e.Path)
		}
	}
	return out
}

// Format renders the tree under a root label.
//
//	shop/
//	├── backend/
//	│   └── main.py
//	└── docker-compose.yml
func (t *Tree) Format(root string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(root, "/") + "/\n")
	t.format(&b, 0, "")
	return strings.TrimRight(b.String(), "\n")
}

func (t *Tree) format(b *strings.Builder, i int, indent string) {
	kids := t.nodes[i].children
	for k, c := range kids {
		n := t.nodes[c]
		branch, next := "├── ", "│   "
		if k == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		name := n.Name
		if n.Kind == Dir {
			name += "/"
		}
		fmt.Fprintf(b, "%s%s%s\n", indent, branch, name)
		if n.Kind == Dir {
			t.format(b, c, indent+next)
		}
	}
}

func clean(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}
