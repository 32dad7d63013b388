package services

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/generator"
	"github.com/Noziop/mkdf/internal/ports"
)

// Category is the factory a component belongs to.
type Category string

const (
	Backend        Category = "backend"
	Frontend       Category = "frontend"
	Database       Category = "database"
	Infrastructure Category = "infrastructure"
)

// Descriptor describes one component of a stack.
type Descriptor interface {
	Name() string
	Category() Category
	// Role is the port slot the component publishes, or "" when its
	// mapping is kept as declared.
	Role() ports.Role
	// InternalPort is the container port, or 0.
	InternalPort() int
	// Root is where files land when the service has no build context.
	Root() string
	// ServiceConfig returns the compose fragment, or nil for none.
	ServiceConfig(sel Selection) *compose.Service
	Files(sel Selection) (map[string]string, error)
	// Dockerfile returns "" when the component runs a stock image.
	Dockerfile(sel Selection) (string, error)
}

// Composite is a component that stands for several others.
type Composite interface {
	Descriptor
	Members() []string
}

// EnvProvider contributes lines to the generated .env file.
type EnvProvider interface {
	EnvVars() []string
}

//go:embed all:templates
var templateFS embed.FS

var renderer = generator.NewRendererWithDelims("[[", "]]")

// TemplateData is what component templates can reference.
type TemplateData struct {
	Project      string
	Component    string
	Port         int
	Database     string
	DatabaseURL  string
	Backend      string
	BackendPort  int
	Frontend     string
	FrontendPort int
	HasRedis     bool
}

type component struct {
	name     string
	category Category
	role     ports.Role
	port     int
	root     string
	lang     string
	service  func(c *component, sel Selection) *compose.Service
}

func (c *component) Name() string       { return c.name }
func (c *component) Category() Category { return c.category }
func (c *component) Role() ports.Role   { return c.role }
func (c *component) InternalPort() int  { return c.port }

func (c *component) Root() string {
	if c.root != "" {
		return c.root
	}
	return c.name
}

func (c *component) ServiceConfig(sel Selection) *compose.Service {
	if c.service == nil {
		return nil
	}
	return c.service(c, sel)
}

func (c *component) data(sel Selection) TemplateData {
	d := TemplateData{
		Project:   sel.Project,
		Component: c.name,
		Port:      c.port,
		Database:  sel.Database(),
		Backend:   sel.Backend(),
		Frontend:  sel.Frontend(),
		HasRedis:  sel.Has("redis"),
	}
	if d.Database != "" {
		d.DatabaseURL = databaseURL(d.Database, c.lang)
	}
	if d.Backend != "" {
		d.BackendPort = internalPort(d.Backend)
	}
	if d.Frontend != "" {
		d.FrontendPort = internalPort(d.Frontend)
	}
	return d
}

const dockerfileTemplate = "Dockerfile.tmpl"

func (c *component) Files(sel Selection) (map[string]string, error) {
	dir := "templates/" + c.name
	if _, err := fs.Stat(templateFS, dir); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	data := c.data(sel)
	files := make(map[string]string)
	err := fs.WalkDir(templateFS, dir, func(p string, e fs.DirEntry, err error) error {
		if err != nil || e.IsDir() {
			return err
		}
		rel := strings.TrimPrefix(p, dir+"/")
		if rel == dockerfileTemplate {
			return nil
		}
		out, err := renderer.RenderFS(templateFS, p, data)
		if err != nil {
			return err
		}
		files[strings.TrimSuffix(rel, ".tmpl")] = string(out)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s files: %w", c.name, err)
	}
	return files, nil
}

func (c *component) Dockerfile(sel Selection) (string, error) {
	p := path.Join("templates", c.name, dockerfileTemplate)
	if _, err := fs.Stat(templateFS, p); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	out, err := renderer.RenderFS(templateFS, p, c.data(sel))
	if err != nil {
		return "", fmt.Errorf("rendering %s Dockerfile: %w", c.name, err)
	}
	return string(out), nil
}

// composite expands to members and contributes nothing else.
type composite struct {
	component
	members []string
}

func (c *composite) Members() []string {
	return append([]string(nil), c.members...)
}

func containerName(suffix string) string {
	return "${PROJECT_NAME:-fullstack}-" + suffix
}

func portString(p int) string {
	return strconv.Itoa(p)
}

// internalPort looks up the container port of a built-in component.
func internalPort(name string) int {
	for _, f := range []*Factory{backendFactory(), frontendFactory(), databaseFactory(), infrastructureFactory()} {
		if d, ok := f.Create(name); ok {
			return d.InternalPort()
		}
	}
	return 0
}
