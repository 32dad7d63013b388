// Package combo assembles a Docker Compose project from registry components.
//
// Create resolves the selection, allocates host ports and a subnet, rewrites
// every component's compose fragment into the project's namespace and
// returns the whole project as a tree: .env, per-component sources and
// Dockerfiles, and docker-compose.yml.
package combo

import (
	"context"
	"fmt"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"

	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/tree"
)

// DefaultProject is used when no project name is given.
const DefaultProject = "fullstack-app"

const (
	composeFile = "docker-compose.yml"
	envFile     = ".env"
)

// Factory builds compose projects. It holds no per-call state and is safe
// for concurrent use when Finder is.
type Factory struct {
	Registry *services.Registry
	Finder   ports.Finder
}

// NewFactory returns a factory over reg that probes ports through f.
func NewFactory(reg *services.Registry, f ports.Finder) *Factory {
	return &Factory{Registry: reg, Finder: f}
}

type part struct {
	desc    services.Descriptor
	service *compose.Service // nil for components without a service
}

// assembly is one resolved generation.
type assembly struct {
	project string
	sel     services.Selection
	parts   []part
	doc     *compose.Document
	ports   *ports.Resolved
}

// Create assembles the project for components.
func (f *Factory) Create(ctx context.Context, components []string, project string, cfg ports.Config) (*tree.Tree, error) {
	a, err := f.assemble(ctx, components, project, cfg)
	if err != nil {
		return nil, err
	}

	b := tree.NewBuilder()
	b.File(envFile, a.env())
	for _, p := range a.parts {
		if err := a.addFiles(b, p); err != nil {
			return nil, err
		}
	}
	yml, err := a.doc.Marshal()
	if err != nil {
		return nil, err
	}
	b.File(composeFile, string(yml))

	t, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building project tree: %w", err)
	}
	return t, nil
}

// Preview returns only the docker-compose.yml text Create would write.
func (f *Factory) Preview(ctx context.Context, components []string, project string, cfg ports.Config) ([]byte, error) {
	a, err := f.assemble(ctx, components, project, cfg)
	if err != nil {
		return nil, err
	}
	return a.doc.Marshal()
}

// Env returns the .env text Create would write.
func (f *Factory) Env(ctx context.Context, components []string, project string, cfg ports.Config) (string, error) {
	a, err := f.assemble(ctx, components, project, cfg)
	if err != nil {
		return "", err
	}
	return a.env(), nil
}

func (f *Factory) assemble(ctx context.Context, components []string, project string, cfg ports.Config) (*assembly, error) {
	if project == "" {
		project = DefaultProject
	}
	sel, err := f.Registry.Select(project, components)
	if err != nil {
		return nil, err
	}
	if dbs := sel.Of(services.Database); len(dbs) > 1 {
		return nil, &MultipleDatabasesError{Databases: dbs}
	}
	for _, c := range []services.Category{services.Backend, services.Frontend} {
		if names := sel.Of(c); len(names) > 1 {
			return nil, &MultipleComponentsError{Category: c, Components: names}
		}
	}

	a := &assembly{project: project, sel: sel}
	for _, name := range sel.Components {
		d, err := f.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		p := part{desc: d}
		if s := d.ServiceConfig(sel); s != nil {
			p.service = s.Clone()
		}
		a.parts = append(a.parts, p)
	}

	needs, reserved, err := a.portNeeds()
	if err != nil {
		return nil, err
	}
	a.ports, err = ports.Resolve(ctx, f.Finder, cfg, needs, reserved...)
	if err != nil {
		return nil, err
	}

	if err := a.buildDocument(); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return a, nil
}

// portNeeds lists the roles to resolve and the host ports already fixed by
// components that keep their own mapping.
func (a *assembly) portNeeds() ([]ports.Need, []int, error) {
	var needs []ports.Need
	var reserved []int
	seen := make(map[ports.Role]bool)
	need := func(role ports.Role, def int) {
		if !seen[role] {
			seen[role] = true
			needs = append(needs, ports.Need{Role: role, Default: def})
		}
	}

	for _, p := range a.parts {
		if p.service == nil {
			continue
		}
		role := p.desc.Role()
		switch {
		case role == ports.Traefik:
			need(ports.Traefik, 0)
			need(ports.TraefikDashboard, 0)
		case role == "":
			for _, spec := range p.service.Ports {
				host, _, err := parsePort(spec)
				if err != nil {
					return nil, nil, fmt.Errorf("service %s: %w", p.desc.Name(), err)
				}
				if host != 0 {
					reserved = append(reserved, host)
				}
			}
		case len(p.service.Ports) > 0:
			def := 0
			switch p.desc.Category() {
			case services.Backend, services.Frontend, services.Database:
				def = p.desc.InternalPort()
			}
			need(role, def)
		}
	}
	return needs, reserved, nil
}

func (a *assembly) network() string {
	return a.project + "_app-network"
}

func (a *assembly) buildDocument() error {
	a.doc = &compose.Document{
		Version:  "3.8",
		Networks: []compose.Network{{Name: a.network(), Driver: "bridge", Subnet: a.ports.Subnet()}},
	}
	traefik := a.sel.Has("traefik")

	for _, p := range a.parts {
		if p.service == nil {
			continue
		}
		s := p.service
		internal, err := a.mapPorts(p.desc, s)
		if err != nil {
			return fmt.Errorf("service %s: %w", p.desc.Name(), err)
		}

		if traefik && internal != 0 {
			switch p.desc.Category() {
			case services.Backend:
				s.Labels = append(s.Labels, compose.TraefikLabels(compose.RouterParams{
					Project: a.project, Name: "backend", Host: a.project + ".localhost", PathPrefix: "/api", Port: internal,
				})...)
			case services.Frontend:
				s.Labels = append(s.Labels, compose.TraefikLabels(compose.RouterParams{
					Project: a.project, Name: "frontend", Host: a.project + ".localhost", Port: internal,
				})...)
			}
		}

		if len(s.Networks) > 0 {
			s.Networks = []string{a.network()}
		}
		for _, v := range s.NamedVolumes() {
			a.doc.AddVolume(v)
		}
		a.doc.Services = append(a.doc.Services, compose.NamedService{Name: p.desc.Name(), Service: s})
	}
	return nil
}

// mapPorts rewrites s.Ports to resolved host ports and returns the
// container port behind the component's role, or 0.
func (a *assembly) mapPorts(d services.Descriptor, s *compose.Service) (int, error) {
	role := d.Role()
	switch {
	case role == ports.Traefik:
		web, _ := a.ports.Port(ports.Traefik)
		dash, _ := a.ports.Port(ports.TraefikDashboard)
		s.Ports = []string{
			fmt.Sprintf("%d:80", web),
			"443:443",
			fmt.Sprintf("%d:8080", dash),
		}
		return 0, nil

	case role == "":
		for i, spec := range s.Ports {
			host, container, err := parsePort(spec)
			if err != nil {
				return 0, err
			}
			if host == 0 {
				s.Ports[i] = fmt.Sprintf("%d:%d", container, container)
			}
		}
		return 0, nil

	case len(s.Ports) > 0:
		_, container, err := parsePort(s.Ports[0])
		if err != nil {
			return 0, err
		}
		host, ok := a.ports.Port(role)
		if !ok {
			return 0, fmt.Errorf("no port resolved for role %s", role)
		}
		s.Ports = []string{fmt.Sprintf("%d:%d", host, container)}
		return container, nil
	}
	return 0, nil
}

// parsePort returns the host port (0 when unpublished) and the container port
// of a compose short port syntax entry.
func parsePort(spec string) (host, container int, err error) {
	mappings, err := nat.ParsePortSpec(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port %q: %w", spec, err)
	}
	if len(mappings) == 0 {
		return 0, 0, fmt.Errorf("invalid port %q", spec)
	}
	m := mappings[0]
	container = m.Port.Int()
	if hp := m.Binding.HostPort; hp != "" {
		// Ranges such as 8000-8001 report their first port.
		first, _, _ := strings.Cut(hp, "-")
		host, err = strconv.Atoi(first)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid host port in %q: %w", spec, err)
		}
	}
	return host, container, nil
}

// check verifies the document is self-consistent.
func (a *assembly) check() error {
	names := make(map[string]bool, len(a.doc.Services))
	for _, s := range a.doc.Services {
		names[s.Name] = true
	}

	owners := make(map[int][]string)
	var order []int
	for _, ns := range a.doc.Services {
		for _, dep := range ns.Service.DependsOn {
			if !names[dep] {
				return &MissingDependencyError{Service: ns.Name, Dependency: dep}
			}
		}
		for _, spec := range ns.Service.Ports {
			host, _, err := parsePort(spec)
			if err != nil {
				return fmt.Errorf("service %s: %w", ns.Name, err)
			}
			if host == 0 {
				continue
			}
			if _, ok := owners[host]; !ok {
				order = append(order, host)
			}
			owners[host] = append(owners[host], ns.Name)
		}
	}
	for _, port := range order {
		if len(owners[port]) > 1 {
			return &ports.ConflictError{Port: port, Owners: owners[port]}
		}
	}
	return nil
}

// env renders the .env file: project name, database credentials, then
// backend settings.
func (a *assembly) env() string {
	lines := []string{"PROJECT_NAME=" + a.project}
	for _, p := range a.parts {
		if e, ok := p.desc.(services.EnvProvider); ok {
			lines = append(lines, e.EnvVars()...)
		}
	}
	if a.sel.Backend() != "" {
		lines = append(lines, "SECRET_KEY=your-super-secret-key-here", "DEBUG=true")
	}
	return strings.Join(lines, "\n") + "\n"
}

// addFiles places a component's sources and Dockerfile under its build
// context, or under its root when it has none.
func (a *assembly) addFiles(b *tree.Builder, p part) error {
	dir := p.desc.Root()
	if p.service != nil && p.service.Build != nil && p.service.Build.Context != "" {
		dir = contextDir(p.service.Build.Context)
	}

	files, err := p.desc.Files(a.sel)
	if err != nil {
		return err
	}
	for _, rel := range slices.Sorted(maps.Keys(files)) {
		b.File(path.Join(dir, rel), files[rel])
	}

	df, err := p.desc.Dockerfile(a.sel)
	if err != nil {
		return err
	}
	if df != "" {
		b.File(path.Join(dir, "Dockerfile"), df)
	}
	return nil
}

// contextDir turns a compose build context into a project-relative
// directory. "." maps to the project root.
func contextDir(ctx string) string {
	dir := strings.TrimPrefix(path.Clean(ctx), "./")
	if dir == "." {
		return ""
	}
	return dir
}
