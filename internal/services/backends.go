package services

import (
	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/ports"
)

var backends = []struct {
	name string
	port int
	lang string
}{
	{"fastapi", 8000, "python"},
	{"flask", 5000, "python"},
	{"django", 8000, "python"},
	{"express", 3000, "node"},
	{"gofiber", 3000, "go"},
	{"laravel", 8000, "php"},
	{"symfony", 8000, "php"},
}

func backendFactory() *Factory {
	f := &Factory{Category: Backend, constructors: map[string]Constructor{}}
	for _, b := range backends {
		f.constructors[b.name] = func() Descriptor {
			return &component{
				name:     b.name,
				category: Backend,
				role:     ports.Backend,
				port:     b.port,
				root:     "backend",
				lang:     b.lang,
				service:  backendService,
			}
		}
	}
	return f
}

// backendService builds from ./backend and wires itself to the selected
// database and cache.
func backendService(c *component, sel Selection) *compose.Service {
	var env, deps []string
	if db := sel.Database(); db != "" {
		env = append(env, "DATABASE_URL="+databaseURL(db, c.lang))
		deps = append(deps, db)
	}
	if sel.Has("redis") {
		env = append(env, "REDIS_URL=redis://redis:6379/0")
		deps = append(deps, "redis")
	}
	env = append(env, "SECRET_KEY=${SECRET_KEY}", "DEBUG=${DEBUG}")

	return &compose.Service{
		Build:         &compose.Build{Context: "./backend", Dockerfile: "Dockerfile"},
		ContainerName: containerName("backend"),
		Ports:         []string{portString(c.port)},
		Volumes:       []string{"./backend:/app"},
		Environment:   env,
		DependsOn:     deps,
		Networks:      []string{"app-network"},
	}
}
