package services

import (
	"fmt"

	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/ports"
)

var frontends = []struct {
	name string
	port int
}{
	{"vue", 5173},
	{"react", 3000},
	{"angular", 4200},
	{"svelte", 5173},
	{"nextjs", 3000},
	{"nuxtjs", 3000},
}

func frontendFactory() *Factory {
	f := &Factory{Category: Frontend, constructors: map[string]Constructor{}}
	for _, fe := range frontends {
		f.constructors[fe.name] = func() Descriptor {
			return &component{
				name:     fe.name,
				category: Frontend,
				role:     ports.Frontend,
				port:     fe.port,
				root:     "frontend",
				lang:     "node",
				service:  frontendService,
			}
		}
	}
	return f
}

func frontendService(c *component, sel Selection) *compose.Service {
	s := &compose.Service{
		Build:         &compose.Build{Context: "./frontend", Dockerfile: "Dockerfile"},
		ContainerName: containerName("frontend"),
		Ports:         []string{portString(c.port)},
		Volumes:       []string{"./frontend:/app", "/app/node_modules"},
		Networks:      []string{"app-network"},
	}
	if be := sel.Backend(); be != "" {
		s.Environment = []string{fmt.Sprintf("API_URL=http://%s:%d", be, internalPort(be))}
		s.DependsOn = []string{be}
	}
	return s
}
