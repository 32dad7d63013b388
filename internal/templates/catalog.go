// Package templates holds the non-docker project templates.
//
// A template is a brace pattern describing the project skeleton, plus
// optionally one registry component whose sources and Dockerfile are
// rendered at the project root.
package templates

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/tree"
)

// Docker is the template name handled by the compose assembler instead of
// the catalog.
const Docker = "docker"

// ErrUnknownTemplate is matched by every UnknownTemplateError.
var ErrUnknownTemplate = errors.New("unknown template")

// UnknownTemplateError names a template the catalog does not have.
type UnknownTemplateError struct {
	Name  string
	Known []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownTemplateError) Unwrap() error {
	return ErrUnknownTemplate
}

// Template is one catalog entry.
type Template struct {
	Name        string
	Category    string
	Description string
	// Skeleton is expanded with brace.Expand. Paths ending in "/" are
	// directories, everything else is a file.
	Skeleton string
	// Component is rendered at the project root when set.
	Component string
}

// Catalog resolves template names to project trees.
type Catalog struct {
	registry  *services.Registry
	templates []Template
}

// NewCatalog returns the built-in templates backed by reg.
func NewCatalog(reg *services.Registry) *Catalog {
	return &Catalog{registry: reg, templates: builtins()}
}

// Templates returns every template in display order.
func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Names lists template names in display order, docker included.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates)+1)
	for _, t := range c.templates {
		names = append(names, t.Name)
	}
	return append(names, Docker)
}

// Category is a display group of templates.
type Category struct {
	Title     string   `json:"title"`
	Templates []string `json:"templates"`
}

// Categories groups template names by category, in first-seen order.
func (c *Catalog) Categories() []Category {
	var out []Category
	pos := make(map[string]int)
	for _, t := range c.templates {
		i, ok := pos[t.Category]
		if !ok {
			i = len(out)
			pos[t.Category] = i
			out = append(out, Category{Title: t.Category})
		}
		out[i].Templates = append(out[i].Templates, t.Name)
	}
	return out
}

// Get returns the named template.
func (c *Catalog) Get(name string) (Template, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range c.templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, &UnknownTemplateError{Name: name, Known: c.Names()}
}

// Build renders the named template for project.
func (c *Catalog) Build(name, project string) (*tree.Tree, error) {
	t, err := c.Get(name)
	if err != nil {
		return nil, err
	}

	b := tree.NewBuilder()
	for _, p := range brace.Expand(t.Skeleton) {
		if strings.HasSuffix(p, "/") {
			b.Dir(p)
			continue
		}
		b.File(p, skeletonContent(p, project, t))
	}

	if t.Component != "" {
		if err := c.addComponent(b, t.Component, project); err != nil {
			return nil, fmt.Errorf("template %s: %w", t.Name, err)
		}
	}
	return b.Build()
}

func (c *Catalog) addComponent(b *tree.Builder, name, project string) error {
	sel, err := c.registry.Select(project, []string{name})
	if err != nil {
		return err
	}
	d, err := c.registry.Get(name)
	if err != nil {
		return err
	}
	files, err := d.Files(sel)
	if err != nil {
		return err
	}
	for _, p := range slices.Sorted(maps.Keys(files)) {
		b.File(p, files[p])
	}
	df, err := d.Dockerfile(sel)
	if err != nil {
		return err
	}
	if df != "" {
		b.File("Dockerfile", df)
	}
	return nil
}

func skeletonContent(p, project string, t Template) string {
	switch p {
	case "README.md":
		return fmt.Sprintf("# %s\n\n%s\n", project, t.Description)
	case "index.html":
		return fmt.Sprintf(staticIndex, project)
	}
	return ""
}

const staticIndex = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%s</title>
  <link rel="stylesheet" href="css/style.css">
</head>
<body>
  <script src="js/main.js"></script>
</body>
</html>
`
