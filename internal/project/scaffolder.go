// Package project creates projects on disk from templates and patterns.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/combo"
	"github.com/Noziop/mkdf/internal/filesystem"
	"github.com/Noziop/mkdf/internal/generator"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
	"github.com/Noziop/mkdf/internal/tree"
)

var (
	// ErrProjectExists is returned before anything is written when the
	// project directory exists and overwriting was not requested.
	ErrProjectExists = errors.New("project directory already exists")
	// ErrInvalidName rejects project names that are not a single path segment.
	ErrInvalidName = errors.New("invalid project name")
	// ErrEmptyPattern rejects blank patterns.
	ErrEmptyPattern = errors.New("pattern is empty")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName checks that name can be used as a directory and compose
// project name.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w %q: use letters, digits, '.', '_' or '-', starting with a letter or digit", ErrInvalidName, name)
	}
	return nil
}

// Request describes one template-based creation.
type Request struct {
	ProjectName string
	Template    string
	Components  []string
	BasePath    string
	Ports       ports.Config
	Overwrite   bool
	DryRun      bool
}

// Result reports where a project went and what was written.
type Result struct {
	Path   string
	Report *generator.Report
}

// Scaffolder turns requests into files.
type Scaffolder struct {
	Combo   *combo.Factory
	Catalog *templates.Catalog
	// Out receives per-path progress lines; nil discards them.
	Out io.Writer
}

// NewScaffolder wires a scaffolder around reg.
func NewScaffolder(reg *services.Registry, finder ports.Finder, out io.Writer) *Scaffolder {
	return &Scaffolder{
		Combo:   combo.NewFactory(reg, finder),
		Catalog: templates.NewCatalog(reg),
		Out:     out,
	}
}

// Tree builds the project tree for req without touching the disk.
func (s *Scaffolder) Tree(ctx context.Context, req Request) (*tree.Tree, error) {
	if strings.EqualFold(req.Template, templates.Docker) {
		return s.Combo.Create(ctx, req.Components, req.ProjectName, req.Ports)
	}
	return s.Catalog.Build(req.Template, req.ProjectName)
}

// CreateFromTemplate builds the requested template under
// BasePath/ProjectName.
func (s *Scaffolder) CreateFromTemplate(ctx context.Context, req Request) (*Result, error) {
	if err := ValidateName(req.ProjectName); err != nil {
		return nil, err
	}
	base, err := resolveBase(req.BasePath)
	if err != nil {
		return nil, err
	}
	root := filepath.Join(base, req.ProjectName)

	if !req.Overwrite {
		if _, err := os.Stat(root); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrProjectExists, root)
		}
	}

	t, err := s.Tree(ctx, req)
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	report, err := filesystem.Materialize(ctx, root, t, s.options(req.Overwrite, req.DryRun))
	if err != nil {
		return nil, wrapUnexpected(err)
	}
	return &Result{Path: root, Report: report}, nil
}

// CreateFromPattern expands pattern and creates every path under basePath.
// Existing paths are skipped unless overwrite is set.
func (s *Scaffolder) CreateFromPattern(ctx context.Context, pattern, basePath string, overwrite, dryRun bool) (*Result, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrEmptyPattern
	}
	base, err := resolveBase(basePath)
	if err != nil {
		return nil, err
	}

	paths := brace.Expand(pattern)
	report, err := filesystem.MaterializePaths(ctx, base, paths, s.options(overwrite, dryRun))
	if err != nil {
		return nil, fmt.Errorf("creating from pattern: %w", err)
	}
	return &Result{Path: base, Report: report}, nil
}

func (s *Scaffolder) options(force, dryRun bool) generator.ExecuteOptions {
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	return generator.ExecuteOptions{Force: force, DryRun: dryRun, Writer: out}
}

func resolveBase(p string) (string, error) {
	if p == "" {
		p = "."
	}
	p, err := filesystem.ExpandHome(p)
	if err != nil {
		return "", fmt.Errorf("resolving base path: %w", err)
	}
	return filepath.Clean(p), nil
}

// expected errors pass through so callers can match them.
var expected = []error{
	services.ErrUnknownService,
	templates.ErrUnknownTemplate,
	combo.ErrMultipleDatabases,
	combo.ErrMultipleComponents,
	ports.ErrNoFreePort,
	ports.ErrNoFreeSubnet,
	tree.ErrPathConflict,
}

func wrapUnexpected(err error) error {
	for _, e := range expected {
		if errors.Is(err, e) {
			return err
		}
	}
	var conflict *ports.ConflictError
	var missing *combo.MissingDependencyError
	if errors.As(err, &conflict) || errors.As(err, &missing) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("unexpected error creating project: %w", err)
}
