package services

import (
	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/ports"
)

func infrastructureFactory() *Factory {
	infra := func(name string, role ports.Role, port int, root string, svc func(*component, Selection) *compose.Service) Constructor {
		return func() Descriptor {
			return &component{name: name, category: Infrastructure, role: role, port: port, root: root, service: svc}
		}
	}
	return &Factory{Category: Infrastructure, constructors: map[string]Constructor{
		"redis":      infra("redis", ports.Redis, 6379, "", redisService),
		"celery":     infra("celery", "", 0, "backend", celeryService),
		"nginx":      infra("nginx", "", 80, "", nginxService),
		"traefik":    infra("traefik", ports.Traefik, 80, "", traefikService),
		"prometheus": infra("prometheus", ports.Prometheus, 9090, "monitoring", prometheusService),
		"grafana":    infra("grafana", ports.Grafana, 3000, "monitoring", grafanaService),
		"monitoring": func() Descriptor {
			return &composite{
				component: component{name: "monitoring", category: Infrastructure, root: "monitoring"},
				members:   []string{"prometheus", "grafana"},
			}
		},
	}}
}

func redisService(c *component, sel Selection) *compose.Service {
	return &compose.Service{
		Image:         "redis:7-alpine",
		ContainerName: containerName("redis"),
		Ports:         []string{"6379"},
		Volumes:       []string{"redis_data:/data"},
		Networks:      []string{"app-network"},
	}
}

// celeryService runs a worker from the backend image; the broker is redis.
func celeryService(c *component, sel Selection) *compose.Service {
	return &compose.Service{
		Build:         &compose.Build{Context: "./backend", Dockerfile: "Dockerfile"},
		ContainerName: containerName("celery"),
		Command:       compose.Scalar("celery -A app.celery worker --loglevel=info"),
		Volumes:       []string{"./backend:/app"},
		Environment:   []string{"CELERY_BROKER_URL=redis://redis:6379/0"},
		DependsOn:     []string{"redis"},
		Networks:      []string{"app-network"},
	}
}

func nginxService(c *component, sel Selection) *compose.Service {
	var deps []string
	if be := sel.Backend(); be != "" {
		deps = append(deps, be)
	}
	if fe := sel.Frontend(); fe != "" {
		deps = append(deps, fe)
	}
	return &compose.Service{
		Build:         &compose.Build{Context: "./nginx", Dockerfile: "Dockerfile"},
		ContainerName: containerName("nginx"),
		Ports:         []string{"80:80"},
		DependsOn:     deps,
		Networks:      []string{"app-network"},
	}
}

func traefikService(c *component, sel Selection) *compose.Service {
	return &compose.Service{
		Image:         "traefik:v3.0",
		ContainerName: containerName("traefik"),
		Command:       compose.List{"--configFile=/traefik.yml"},
		Ports:         []string{"80:80", "443:443", "8080:8080"},
		Volumes: []string{
			"/var/run/docker.sock:/var/run/docker.sock:ro",
			"./traefik/traefik.yml:/traefik.yml:ro",
		},
		Networks: []string{"app-network"},
	}
}

func prometheusService(c *component, sel Selection) *compose.Service {
	return &compose.Service{
		Image:         "prom/prometheus:v2.47.0",
		ContainerName: containerName("prometheus"),
		Ports:         []string{"9090:9090"},
		Volumes:       []string{"./monitoring/prometheus.yml:/etc/prometheus/prometheus.yml"},
		Networks:      []string{"app-network"},
	}
}

func grafanaService(c *component, sel Selection) *compose.Service {
	s := &compose.Service{
		Image:         "grafana/grafana:10.1.5",
		ContainerName: containerName("grafana"),
		Ports:         []string{"3001:3000"},
		Volumes: []string{
			"grafana_data:/var/lib/grafana",
			"./monitoring/grafana/provisioning:/etc/grafana/provisioning",
		},
		Networks: []string{"app-network"},
	}
	if sel.Has("prometheus") {
		s.DependsOn = []string{"prometheus"}
	}
	return s
}
