package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists marks an operation whose target is already on disk.
// Execute treats it as a skip, not a failure.
var ErrExists = errors.New("already exists")

// Operation is one filesystem change.
//
// Validate reports whether Execute would succeed without side effects.
// force=true accepts targets that already exist.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
	Target() string
}

// MkdirOp creates a directory and any missing parents.
type MkdirOp struct {
	Path string
	Mode fs.FileMode // defaults to 0755
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return checkParents(op.Path)
	case err != nil:
		return fmt.Errorf("cannot inspect %s: %w", op.Path, err)
	case !info.IsDir():
		return fmt.Errorf("cannot create directory %s: a file is in the way", op.Path)
	case !force:
		return fmt.Errorf("directory %s: %w", op.Path, ErrExists)
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	mode := op.Mode
	if mode == 0 {
		mode = 0o755
	}
	return os.MkdirAll(op.Path, mode)
}

func (op *MkdirOp) Description() string {
	return "Create " + op.Path + string(filepath.Separator)
}

func (op *MkdirOp) Target() string { return op.Path }

// WriteFileOp writes a file, creating parent directories as needed.
// Empty content is allowed; nil content is rejected.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode // defaults to 0644
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := os.Stat(op.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return checkParents(filepath.Dir(op.Path))
	case err != nil:
		return fmt.Errorf("cannot inspect %s: %w", op.Path, err)
	case info.IsDir():
		return fmt.Errorf("cannot write file %s: a directory is in the way", op.Path)
	case !force:
		return fmt.Errorf("file %s: %w", op.Path, ErrExists)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0o755); err != nil {
		return err
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0o644
	}
	return os.WriteFile(op.Path, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

func (op *WriteFileOp) Target() string { return op.Path }

// checkParents fails when the nearest existing ancestor of dir is not a directory.
func checkParents(dir string) error {
	for d := dir; ; {
		info, err := os.Stat(d)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("cannot create %s: %s is a file", dir, d)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot inspect %s: %w", d, err)
		}
		parent := filepath.Dir(d)
		if parent == d {
			return nil
		}
		d = parent
	}
}
