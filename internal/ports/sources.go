package ports

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
)

// SubnetSource reports IPv4 subnets already in use.
type SubnetSource interface {
	Subnets(ctx context.Context) ([]netip.Prefix, error)
}

// SubnetSourceFunc adapts a function to SubnetSource.
type SubnetSourceFunc func(ctx context.Context) ([]netip.Prefix, error)

func (f SubnetSourceFunc) Subnets(ctx context.Context) ([]netip.Prefix, error) {
	return f(ctx)
}

// InterfaceSource reads the host's interface addresses.
type InterfaceSource struct{}

func (InterfaceSource) Subnets(ctx context.Context) ([]netip.Prefix, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	var out []netip.Prefix
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.To4() == nil {
			continue
		}
		if p, err := netip.ParsePrefix(ipnet.String()); err == nil {
			out = append(out, p.Masked())
		}
	}
	return out, nil
}

// DockerSource lists the IPAM subnets of existing Docker networks.
type DockerSource struct {
	Timeout time.Duration
}

// NewDockerSource returns a DockerSource configured from the environment.
func NewDockerSource() *DockerSource {
	return &DockerSource{Timeout: 2 * time.Second}
}

func (d *DockerSource) Subnets(ctx context.Context) ([]netip.Prefix, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	networks, err := cli.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, err
	}

	var out []netip.Prefix
	for _, n := range networks {
		for _, cfg := range n.IPAM.Config {
			if p, err := netip.ParsePrefix(cfg.Subnet); err == nil && p.Addr().Is4() {
				out = append(out, p.Masked())
			}
		}
	}
	return out, nil
}
