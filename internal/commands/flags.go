package commands

import (
	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/ports"
)

var portFlagNames = map[ports.Role]string{
	ports.Backend:          "backend-port",
	ports.Frontend:         "frontend-port",
	ports.Database:         "db-port",
	ports.Redis:            "redis-port",
	ports.Prometheus:       "prometheus-port",
	ports.Grafana:          "grafana-port",
	ports.Traefik:          "traefik-port",
	ports.TraefikDashboard: "traefik-dashboard-port",
}

// addPortFlags registers the port and subnet flags on cmd.
func addPortFlags(cmd *cobra.Command) {
	for _, role := range ports.Roles {
		cmd.Flags().Int(portFlagNames[role], 0, "Host port for "+string(role)+" (default: auto)")
	}
	cmd.Flags().String("subnet", "", "Docker network subnet, e.g. 172.20.0.0/16 (default: auto)")
}

// portConfig overlays explicitly set flags on base.
func portConfig(cmd *cobra.Command, base ports.Config) ports.Config {
	cfg := base
	for _, role := range ports.Roles {
		name := portFlagNames[role]
		if cmd.Flags().Changed(name) {
			p, _ := cmd.Flags().GetInt(name)
			cfg = cfg.With(role, p)
		}
	}
	if cmd.Flags().Changed("subnet") {
		cfg.Subnet, _ = cmd.Flags().GetString("subnet")
	}
	return cfg
}
