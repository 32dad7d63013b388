// Package ports picks host ports and a private subnet for generated stacks.
//
// Discovery is probe based: a port counts as free when it can be bound and
// released, and a subnet counts as free when it overlaps nothing the host or
// the Docker daemon already routes. Nothing is reserved, so a port can be
// taken between generation and `docker compose up`.
package ports

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Role names a port slot in a generated stack.
type Role string

const (
	Backend          Role = "backend"
	Frontend         Role = "frontend"
	Database         Role = "database"
	Redis            Role = "redis"
	Prometheus       Role = "prometheus"
	Grafana          Role = "grafana"
	Traefik          Role = "traefik"
	TraefikDashboard Role = "traefik_dashboard"
)

// Roles lists every role in display order.
var Roles = []Role{Backend, Frontend, Database, Redis, Prometheus, Grafana, Traefik, TraefikDashboard}

var defaults = map[Role]int{
	Backend:          8000,
	Frontend:         3000,
	Database:         5432,
	Redis:            6379,
	Prometheus:       9090,
	Grafana:          3001,
	Traefik:          80,
	TraefikDashboard: 8080,
}

// DefaultPort is the first port tried for role when none is configured.
func DefaultPort(role Role) int {
	return defaults[role]
}

// ParseRole accepts role names with dashes or underscores.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	_, ok := defaults[r]
	return r, ok
}

var (
	// ErrNoFreePort is returned when every probed port was taken.
	ErrNoFreePort = errors.New("no free port found")
	// ErrNoFreeSubnet is returned when every candidate subnet overlaps one in use.
	ErrNoFreeSubnet = errors.New("no free subnet found")
)

// ConflictError reports one host port claimed by several owners.
type ConflictError struct {
	Port   int
	Owners []string
}

func (e *ConflictError) Error() string {
	owners := append([]string(nil), e.Owners...)
	sort.Strings(owners)
	return fmt.Sprintf("port %d is assigned to more than one service: %s", e.Port, strings.Join(owners, ", "))
}

// Config is the user's port request. A zero or missing port, or an empty
// Subnet, is allocated automatically.
type Config struct {
	Ports  map[Role]int
	Subnet string
}

// With returns a copy of c with role set to port.
func (c Config) With(role Role, port int) Config {
	out := Config{Subnet: c.Subnet, Ports: make(map[Role]int, len(c.Ports)+1)}
	for k, v := range c.Ports {
		out.Ports[k] = v
	}
	out.Ports[role] = port
	return out
}
