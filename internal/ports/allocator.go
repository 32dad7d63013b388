package ports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strconv"
)

const maxPort = 65535

// Finder discovers free host resources.
type Finder interface {
	FindFreePort(preferred int) (int, error)
	FindFreeSubnet(ctx context.Context) (string, error)
}

// Allocator probes the local host.
type Allocator struct {
	// Host is the address probed; empty means all interfaces.
	Host string
	// MaxAttempts bounds how many consecutive ports FindFreePort tries.
	MaxAttempts int
	// Candidates are tried in order by FindFreeSubnet.
	Candidates []netip.Prefix
	// Sources report subnets already in use.
	Sources []SubnetSource
	Logger  *slog.Logger
	// Listen opens probe listeners; nil means net.Listen.
	Listen func(network, address string) (net.Listener, error)
}

// NewAllocator returns an Allocator that checks host interfaces and, when a
// daemon is reachable, Docker networks.
func NewAllocator(logger *slog.Logger) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Allocator{
		MaxAttempts: 100,
		Candidates:  DefaultCandidates(),
		Sources:     []SubnetSource{InterfaceSource{}, NewDockerSource()},
		Logger:      logger,
	}
}

// DefaultCandidates lists 172.18.0.0/16 through 172.31.0.0/16, then the
// sixteen /20 blocks of 192.168.0.0/16.
func DefaultCandidates() []netip.Prefix {
	var out []netip.Prefix
	for b := 18; b <= 31; b++ {
		out = append(out, netip.PrefixFrom(netip.AddrFrom4([4]byte{172, byte(b), 0, 0}), 16))
	}
	for b := 0; b < 256; b += 16 {
		out = append(out, netip.PrefixFrom(netip.AddrFrom4([4]byte{192, 168, byte(b), 0}), 20))
	}
	return out
}

// FindFreePort returns the first port from preferred upward that can be bound.
func (a *Allocator) FindFreePort(preferred int) (int, error) {
	if preferred <= 0 || preferred > maxPort {
		return 0, fmt.Errorf("invalid preferred port %d", preferred)
	}
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = 100
	}
	for p := preferred; p < preferred+attempts && p <= maxPort; p++ {
		if a.portFree(p) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w in %d..%d", ErrNoFreePort, preferred, min(preferred+attempts-1, maxPort))
}

// portFree reports whether port can be bound. A port the current user may
// not bind, such as 80 for a non-root user, counts as free: the Docker
// daemon publishes it, not this process.
func (a *Allocator) portFree(port int) bool {
	listen := a.Listen
	if listen == nil {
		listen = net.Listen
	}
	l, err := listen("tcp", net.JoinHostPort(a.Host, strconv.Itoa(port)))
	if errors.Is(err, os.ErrPermission) {
		a.logger().Debug("port not bindable without privileges, assuming free", "port", port)
		return true
	}
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}

func (a *Allocator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// FindFreeSubnet returns the first candidate that overlaps no subnet in use.
// A source that fails is logged and ignored.
func (a *Allocator) FindFreeSubnet(ctx context.Context) (string, error) {
	var used []netip.Prefix
	for _, src := range a.Sources {
		prefixes, err := src.Subnets(ctx)
		if err != nil {
			a.logger().Debug("subnet source unavailable", "source", fmt.Sprintf("%T", src), "error", err)
			continue
		}
		used = append(used, prefixes...)
	}

	candidates := a.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	for _, c := range candidates {
		if !overlapsAny(c, used) {
			return c.String(), nil
		}
	}
	return "", ErrNoFreeSubnet
}

func overlapsAny(p netip.Prefix, used []netip.Prefix) bool {
	for _, u := range used {
		if p.Overlaps(u) {
			return true
		}
	}
	return false
}
