package filesystem

import (
	"context"
	"path/filepath"

	"github.com/Noziop/mkdf/internal/generator"
	"github.com/Noziop/mkdf/internal/tree"
)

// Plan turns a tree into operations rooted at root: the root directory first,
// then every node depth-first.
func Plan(root string, t *tree.Tree) []generator.Operation {
	ops := []generator.Operation{&generator.MkdirOp{Path: root}}
	for _, e := range t.Entries() {
		target := filepath.Join(root, filepath.FromSlash(e.Path))
		if e.Kind == tree.File {
			ops = append(ops, &generator.WriteFileOp{Path: target, Content: []byte(e.Content)})
		} else {
			ops = append(ops, &generator.MkdirOp{Path: target})
		}
	}
	return ops
}

// Materialize writes t under root.
func Materialize(ctx context.Context, root string, t *tree.Tree, opts generator.ExecuteOptions) (*generator.Report, error) {
	return generator.Execute(ctx, Plan(root, t), opts)
}

// PlanPaths creates one operation per path, joined onto base. Files are empty.
func PlanPaths(base string, paths []string) []generator.Operation {
	ops := make([]generator.Operation, 0, len(paths))
	for _, p := range paths {
		target := filepath.Join(base, filepath.FromSlash(p))
		if IsFilePath(p) {
			ops = append(ops, &generator.WriteFileOp{Path: target, Content: []byte{}})
		} else {
			ops = append(ops, &generator.MkdirOp{Path: target})
		}
	}
	return ops
}

// MaterializePaths creates every path under base.
func MaterializePaths(ctx context.Context, base string, paths []string, opts generator.ExecuteOptions) (*generator.Report, error) {
	return generator.Execute(ctx, PlanPaths(base, paths), opts)
}
