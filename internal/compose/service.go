package compose

import "strings"

// Build is a service build section.
type Build struct {
	Context    string
	Dockerfile string
}

// Service is one entry under services:. Empty fields are omitted when encoded.
type Service struct {
	Image         string
	Build         *Build
	ContainerName string
	Restart       string
	Command       Value // Scalar or List
	Ports         []string
	Volumes       []string
	Environment   []string // KEY=VALUE
	DependsOn     []string
	Networks      []string
	Labels        []string
	Extra         Map // appended after the known keys
}

// Clone returns a deep copy.
func (s *Service) Clone() *Service {
	out := *s
	if s.Build != nil {
		b := *s.Build
		out.Build = &b
	}
	out.Ports = append([]string(nil), s.Ports...)
	out.Volumes = append([]string(nil), s.Volumes...)
	out.Environment = append([]string(nil), s.Environment...)
	out.DependsOn = append([]string(nil), s.DependsOn...)
	out.Networks = append([]string(nil), s.Networks...)
	out.Labels = append([]string(nil), s.Labels...)
	out.Extra = append(Map(nil), s.Extra...)
	return &out
}

// NamedVolumes returns volume sources that are named volumes rather than
// bind mounts. Sources starting with '.', '/' or '~' are bind mounts.
func (s *Service) NamedVolumes() []string {
	var out []string
	for _, v := range s.Volumes {
		src, _, found := strings.Cut(v, ":")
		if !found || src == "" {
			continue
		}
		if strings.HasPrefix(src, ".") || strings.HasPrefix(src, "/") || strings.HasPrefix(src, "~") {
			continue
		}
		out = append(out, src)
	}
	return out
}

// Map encodes the service with keys in a fixed order.
func (s *Service) Map() Map {
	var m Map
	if s.Image != "" {
		m = append(m, Field{"image", Scalar(s.Image)})
	}
	if s.Build != nil {
		b := Map{{"context", Scalar(s.Build.Context)}}
		if s.Build.Dockerfile != "" {
			b = append(b, Field{"dockerfile", Scalar(s.Build.Dockerfile)})
		}
		m = append(m, Field{"build", b})
	}
	if s.ContainerName != "" {
		m = append(m, Field{"container_name", Scalar(s.ContainerName)})
	}
	if s.Restart != "" {
		m = append(m, Field{"restart", Scalar(s.Restart)})
	}
	if s.Command != nil {
		m = append(m, Field{"command", s.Command})
	}
	lists := []struct {
		key   string
		items []string
	}{
		{"ports", s.Ports},
		{"volumes", s.Volumes},
		{"environment", s.Environment},
		{"depends_on", s.DependsOn},
		{"networks", s.Networks},
		{"labels", s.Labels},
	}
	for _, l := range lists {
		if len(l.items) > 0 {
			m = append(m, Field{l.key, List(l.items)})
		}
	}
	return append(m, s.Extra...)
}

// NamedService pairs a service with its key under services:.
type NamedService struct {
	Name    string
	Service *Service
}

// Network is a top-level network definition.
type Network struct {
	Name   string
	Driver string
	Subnet string
}

// Document is a complete compose file.
type Document struct {
	Version  string
	Services []NamedService
	Volumes  []string
	Networks []Network
}

// Service returns the named service.
func (d *Document) Service(name string) (*Service, bool) {
	for _, s := range d.Services {
		if s.Name == name {
			return s.Service, true
		}
	}
	return nil, false
}

// AddVolume registers a named volume once, keeping first-seen order.
func (d *Document) AddVolume(name string) {
	for _, v := range d.Volumes {
		if v == name {
			return
		}
	}
	d.Volumes = append(d.Volumes, name)
}
