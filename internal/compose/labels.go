package compose

import "fmt"

// RouterParams describes one HTTP route exposed through Traefik.
type RouterParams struct {
	Project    string // router names are {Project}-{Name}
	Name       string
	Host       string
	PathPrefix string // optional
	Port       int    // container port behind the router
}

// TraefikLabels returns the labels routing Host (and optional PathPrefix)
// traffic on the web entrypoint to the container port.
//
//	TraefikLabels(RouterParams{Project: "shop", Name: "backend", Host: "shop.localhost", PathPrefix: "/api", Port: 8000})
//	// traefik.enable=true
//	// traefik.http.routers.shop-backend.rule=Host(`shop.localhost`) && PathPrefix(`/api`)
//	// traefik.http.routers.shop-backend.entrypoints=web
//	// traefik.http.services.shop-backend.loadbalancer.server.port=8000
func TraefikLabels(p RouterParams) []string {
	name := fmt.Sprintf("%s-%s", p.Project, p.Name)
	rule := fmt.Sprintf("Host(`%s`)", p.Host)
	if p.PathPrefix != "" {
		rule += fmt.Sprintf(" && PathPrefix(`%s`)", p.PathPrefix)
	}
	return []string{
		"traefik.enable=true",
		fmt.Sprintf("traefik.http.routers.%s.rule=%s", name, rule),
		fmt.Sprintf("traefik.http.routers.%s.entrypoints=web", name),
		fmt.Sprintf("traefik.http.services.%s.loadbalancer.server.port=%d", name, p.Port),
	}
}
