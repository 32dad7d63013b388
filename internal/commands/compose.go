package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/combo"
	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/services"
)

// ComposeCmd creates the 'compose' command printing a compose document
func ComposeCmd() *cobra.Command {
	var (
		projectName string
		validate    bool
	)

	cmd := &cobra.Command{
		Use:   "compose <components...>",
		Short: "Print the docker-compose.yml for a set of components",
		Long: `Assembles the Docker Compose document 'mkdf create <name> docker' would
write and prints it without creating any files.

Examples:
  mkdf compose fastapi vue postgresql
  mkdf compose django redis celery --project-name shop --validate`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			f := combo.NewFactory(services.NewRegistry(), ports.NewAllocator(slog.Default()))
			pc := portConfig(cmd, cfg.Ports)

			var text []byte
			err = output.Spin("Allocating ports and networks", func() error {
				text, err = f.Preview(ctx, args, projectName, pc)
				return err
			})
			if err != nil {
				return err
			}

			if validate {
				env, err := f.Env(ctx, args, projectName, pc)
				if err != nil {
					return err
				}
				name := projectName
				if name == "" {
					name = combo.DefaultProject
				}
				p, err := compose.Validate(ctx, name, text, compose.ParseEnv(env))
				if err != nil {
					return err
				}
				output.Verbose(fmt.Sprintf("Validated %d services", len(p.Services)))
			}

			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}

	cmd.Flags().StringVar(&projectName, "project-name", combo.DefaultProject, "Compose project name")
	cmd.Flags().BoolVar(&validate, "validate", false, "Check the document against the Compose schema")
	addPortFlags(cmd)

	return cmd
}
