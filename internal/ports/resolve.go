package ports

import (
	"context"
	"fmt"
	"net/netip"
)

// Need asks Resolve for one role. Default overrides DefaultPort when nonzero.
type Need struct {
	Role    Role
	Default int
}

// Resolved is the final port and subnet assignment for one generation.
type Resolved struct {
	ports  map[Role]int
	subnet string
}

// Port returns the host port bound to role.
func (r *Resolved) Port(role Role) (int, bool) {
	p, ok := r.ports[role]
	return p, ok
}

// Subnet returns the network CIDR.
func (r *Resolved) Subnet() string {
	return r.subnet
}

// Resolve assigns a host port to every need and picks the subnet.
// Explicit ports from cfg are used as given; the rest are probed upward from
// their defaults, never reusing a port already handed out in this call or
// listed in reserved.
func Resolve(ctx context.Context, f Finder, cfg Config, needs []Need, reserved ...int) (*Resolved, error) {
	res := &Resolved{ports: make(map[Role]int, len(needs))}
	claimed := make(map[int]Role)
	for _, p := range reserved {
		claimed[p] = ""
	}

	for _, n := range needs {
		p := cfg.Ports[n.Role]
		if p == 0 {
			continue
		}
		if p < 0 || p > maxPort {
			return nil, fmt.Errorf("invalid %s port %d", n.Role, p)
		}
		if other, dup := claimed[p]; dup && other != "" && other != n.Role {
			return nil, &ConflictError{Port: p, Owners: []string{string(other), string(n.Role)}}
		}
		claimed[p] = n.Role
		res.ports[n.Role] = p
	}

	for _, n := range needs {
		if _, done := res.ports[n.Role]; done {
			continue
		}
		start := n.Default
		if start == 0 {
			start = DefaultPort(n.Role)
		}
		p, err := nextFree(f, start, claimed)
		if err != nil {
			return nil, fmt.Errorf("allocating %s port: %w", n.Role, err)
		}
		claimed[p] = n.Role
		res.ports[n.Role] = p
	}

	if cfg.Subnet != "" {
		prefix, err := netip.ParsePrefix(cfg.Subnet)
		if err != nil {
			return nil, fmt.Errorf("invalid subnet %q: %w", cfg.Subnet, err)
		}
		res.subnet = prefix.Masked().String()
		return res, nil
	}

	subnet, err := f.FindFreeSubnet(ctx)
	if err != nil {
		return nil, err
	}
	res.subnet = subnet
	return res, nil
}

func nextFree(f Finder, start int, claimed map[int]Role) (int, error) {
	for start <= maxPort {
		p, err := f.FindFreePort(start)
		if err != nil {
			return 0, err
		}
		if _, taken := claimed[p]; !taken {
			return p, nil
		}
		start = p + 1
	}
	return 0, ErrNoFreePort
}

// All returns a copy of every assigned port.
func (r *Resolved) All() map[Role]int {
	out := make(map[Role]int, len(r.ports))
	for k, v := range r.ports {
		out[k] = v
	}
	return out
}
