package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFinder treats ports in busy as taken and returns subnet verbatim.
type fakeFinder struct {
	busy   map[int]bool
	subnet string
}

func (f fakeFinder) FindFreePort(preferred int) (int, error) {
	for p := preferred; p < preferred+100; p++ {
		if !f.busy[p] {
			return p, nil
		}
	}
	return 0, ErrNoFreePort
}

func (f fakeFinder) FindFreeSubnet(context.Context) (string, error) {
	if f.subnet == "" {
		return "", ErrNoFreeSubnet
	}
	return f.subnet, nil
}

func TestResolveDefaults(t *testing.T) {
	f := fakeFinder{busy: map[int]bool{8000: true}, subnet: "172.20.0.0/16"}
	res, err := Resolve(context.Background(), f, Config{}, []Need{
		{Role: Backend},
		{Role: Database, Default: 3306},
	})
	require.NoError(t, err)

	p, ok := res.Port(Backend)
	assert.True(t, ok)
	assert.Equal(t, 8001, p)
	p, _ = res.Port(Database)
	assert.Equal(t, 3306, p)
	assert.Equal(t, "172.20.0.0/16", res.Subnet())

	_, ok = res.Port(Redis)
	assert.False(t, ok)
}

func TestResolveExplicitWins(t *testing.T) {
	f := fakeFinder{subnet: "172.20.0.0/16"}
	cfg := Config{Ports: map[Role]int{Backend: 9000}, Subnet: "10.5.0.7/16"}
	res, err := Resolve(context.Background(), f, cfg, []Need{{Role: Backend}})
	require.NoError(t, err)

	p, _ := res.Port(Backend)
	assert.Equal(t, 9000, p)
	assert.Equal(t, "10.5.0.0/16", res.Subnet())
}

func TestResolveNeverReusesClaimedPort(t *testing.T) {
	f := fakeFinder{subnet: "172.20.0.0/16"}
	cfg := Config{Ports: map[Role]int{Frontend: 3001}}
	res, err := Resolve(context.Background(), f, cfg, []Need{
		{Role: Frontend},
		{Role: Grafana},
	})
	require.NoError(t, err)

	p, _ := res.Port(Grafana)
	assert.Equal(t, 3002, p)
}

func TestResolveExplicitConflict(t *testing.T) {
	f := fakeFinder{subnet: "172.20.0.0/16"}
	cfg := Config{Ports: map[Role]int{Backend: 8000, Frontend: 8000}}
	_, err := Resolve(context.Background(), f, cfg, []Need{{Role: Backend}, {Role: Frontend}})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 8000, conflict.Port)
	assert.Contains(t, err.Error(), "backend, frontend")
}

func TestResolveInvalidSubnet(t *testing.T) {
	_, err := Resolve(context.Background(), fakeFinder{}, Config{Subnet: "nope"}, nil)
	assert.Error(t, err)
}

func TestResolveSubnetExhausted(t *testing.T) {
	_, err := Resolve(context.Background(), fakeFinder{}, Config{}, nil)
	assert.ErrorIs(t, err, ErrNoFreeSubnet)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("traefik-dashboard")
	assert.True(t, ok)
	assert.Equal(t, TraefikDashboard, r)

	_, ok = ParseRole("mailhog")
	assert.False(t, ok)
}

func TestConfigWith(t *testing.T) {
	base := Config{Ports: map[Role]int{Backend: 1}}
	next := base.With(Frontend, 2)
	assert.Len(t, base.Ports, 1)
	assert.Equal(t, 2, next.Ports[Frontend])
}

func TestResolveSkipsReserved(t *testing.T) {
	f := fakeFinder{subnet: "172.20.0.0/16"}
	res, err := Resolve(context.Background(), f, Config{}, []Need{{Role: Traefik}}, 80, 81)
	require.NoError(t, err)

	p, _ := res.Port(Traefik)
	assert.Equal(t, 82, p)
}
