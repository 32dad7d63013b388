package tree

import (
	"fmt"
	"strings"
)

type pending struct {
	path    string
	kind    Kind
	content string
}

// Builder collects directory and file declarations and folds them into a Tree.
// Declarations may arrive in any order; missing parent directories are implied.
type Builder struct {
	entries []pending
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Dir declares a directory. Declaring it twice is harmless.
func (b *Builder) Dir(p string) *Builder {
	b.entries = append(b.entries, pending{path: p, kind: Dir})
	return b
}

// File declares a file. When a path is declared as a file more than once,
// the last content wins.
func (b *Builder) File(p, content string) *Builder {
	b.entries = append(b.entries, pending{path: p, kind: File, content: content})
	return b
}

// Merge copies every node of t under prefix.
func (b *Builder) Merge(prefix string, t *Tree) *Builder {
	for _, e := range t.Entries() {
		full := prefix + "/" + e.Path
		if e.Kind == File {
			b.File(full, e.Content)
		} else {
			b.Dir(full)
		}
	}
	return b
}

// Build folds the declarations into a Tree.
func (b *Builder) Build() (*Tree, error) {
	t := &Tree{
		nodes: []Node{{Kind: Dir, parent: -1}},
		index: map[string]int{"": 0},
	}
	for _, e := range b.entries {
		p := clean(e.path)
		if p == "" {
			if e.kind == File {
				return nil, fmt.Errorf("%w: file with empty path", ErrPathConflict)
			}
			continue
		}
		if err := t.insert(p, e.kind, e.content); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) insert(p string, kind Kind, content string) error {
	parts := strings.Split(p, "/")
	parent := 0
	for i, name := range parts {
		sub := strings.Join(parts[:i+1], "/")
		want := Dir
		if i == len(parts)-1 {
			want = kind
		}

		if idx, ok := t.index[sub]; ok {
			n := &t.nodes[idx]
			if n.Kind != want {
				return fmt.Errorf("%w: %s declared as both %s and %s", ErrPathConflict, sub, n.Kind, want)
			}
			if want == File {
				n.Content = content
			}
			parent = idx
			continue
		}

		idx := len(t.nodes)
		t.nodes = append(t.nodes, Node{Name: name, Kind: want, parent: parent})
		if want == File {
			t.nodes[idx].Content = content
		}
		t.nodes[parent].children = append(t.nodes[parent].children, idx)
		t.index[sub] = idx
		parent = idx
	}
	return nil
}
