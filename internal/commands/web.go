package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/web"
)

// WebCmd creates the 'web' command serving the JSON API
func WebCmd() *cobra.Command {
	var (
		host      string
		portStart int
		root      string
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the JSON API",
		Long: `Starts an HTTP server exposing component listing, pattern preview and
project generation as JSON endpoints. The server binds the first free port
from --port-start upward and stops on Ctrl+C.

Endpoints:
  GET  /api/components, /api/templates
  POST /api/pattern/preview, /api/pattern
  POST /api/projects, /api/docker/preview
  GET  /healthz, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("host") {
				host = cfg.Web.Host
			}
			if !cmd.Flags().Changed("port-start") {
				portStart = cfg.Web.PortStart
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			srv := web.NewServer(web.Options{
				Root:   absRoot,
				Finder: ports.NewAllocator(logger),
				Logger: logger,
			})
			return srv.ListenAndServe(cmd.Context(), host, portStart, func(addr string) {
				output.Success(fmt.Sprintf("mkdf API running at http://%s", addr))
				output.Info(fmt.Sprintf("Projects are created under %s", absRoot))
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Address to bind")
	cmd.Flags().IntVar(&portStart, "port-start", 9500, "First port to try")
	cmd.Flags().StringVar(&root, "root", ".", "Directory projects are created under")

	return cmd
}
