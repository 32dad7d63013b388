// Package services defines the components a generated stack can contain.
//
// A Registry groups components into four factories (backend, frontend,
// database, infrastructure). Looking a name up yields a fresh Descriptor,
// which knows the component's compose fragment, its source files and its
// Dockerfile, all of which can depend on the rest of the Selection.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownService is matched by every UnknownServiceError.
var ErrUnknownService = errors.New("unknown service")

// UnknownServiceError names a component no factory knows.
type UnknownServiceError struct {
	Name  string
	Known []string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service: %s (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownServiceError) Unwrap() error {
	return ErrUnknownService
}

// Constructor builds a fresh descriptor.
type Constructor func() Descriptor

// Factory maps component names of one category to constructors.
type Factory struct {
	Category     Category
	constructors map[string]Constructor
}

// Names returns the factory's component names, sorted.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.constructors))
	for n := range f.constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Create builds the named component.
func (f *Factory) Create(name string) (Descriptor, bool) {
	c, ok := f.constructors[name]
	if !ok {
		return nil, false
	}
	return c(), true
}

// Registry resolves component names across its factories in a fixed order.
type Registry struct {
	factories []*Factory
}

// NewRegistry returns the registry of every built-in component.
func NewRegistry() *Registry {
	return &Registry{factories: []*Factory{
		backendFactory(),
		frontendFactory(),
		databaseFactory(),
		infrastructureFactory(),
	}}
}

// Get builds the named component.
func (r *Registry) Get(name string) (Descriptor, error) {
	for _, f := range r.factories {
		if d, ok := f.Create(name); ok {
			return d, nil
		}
	}
	return nil, &UnknownServiceError{Name: name, Known: r.Names()}
}

// Has reports whether name is a known component.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// CategoryOf returns the factory category of name.
func (r *Registry) CategoryOf(name string) (Category, bool) {
	for _, f := range r.factories {
		if _, ok := f.constructors[name]; ok {
			return f.Category, true
		}
	}
	return "", false
}

// Names lists every component, sorted.
func (r *Registry) Names() []string {
	var names []string
	for _, f := range r.factories {
		names = append(names, f.Names()...)
	}
	sort.Strings(names)
	return names
}

// Factories returns the factories in lookup order.
func (r *Registry) Factories() []*Factory {
	return r.factories
}

// Group is a display category with its components.
type Group struct {
	Title      string   `json:"title"`
	Components []string `json:"components"`
}

// Groups lists components by the categories shown to users.
func (r *Registry) Groups() []Group {
	groups := []Group{
		{Title: "Backend", Components: r.factory(Backend).Names()},
		{Title: "Frontend", Components: r.factory(Frontend).Names()},
		{Title: "Fullstack", Components: []string{"django", "laravel", "symfony"}},
		{Title: "Database", Components: r.factory(Database).Names()},
		{Title: "Cache/Queue", Components: []string{"celery", "redis"}},
		{Title: "Proxy", Components: []string{"nginx", "traefik"}},
		{Title: "Monitoring", Components: []string{"grafana", "monitoring", "prometheus"}},
	}
	return groups
}

func (r *Registry) factory(c Category) *Factory {
	for _, f := range r.factories {
		if f.Category == c {
			return f
		}
	}
	return &Factory{Category: c}
}

// Select validates names and returns them as a Selection for project.
// Duplicates are dropped and composites are expanded after the composite's
// own position, keeping the first occurrence of every component.
func (r *Registry) Select(project string, names []string) (Selection, error) {
	sel := Selection{Project: project, categories: map[string]Category{}}
	var add func(name string) error
	add = func(name string) error {
		if _, seen := sel.categories[name]; seen {
			return nil
		}
		d, err := r.Get(name)
		if err != nil {
			return err
		}
		sel.categories[name] = d.Category()
		sel.Components = append(sel.Components, name)
		if c, ok := d.(Composite); ok {
			for _, m := range c.Members() {
				if err := add(m); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, n := range names {
		if err := add(strings.ToLower(strings.TrimSpace(n))); err != nil {
			return Selection{}, err
		}
	}
	return sel, nil
}
