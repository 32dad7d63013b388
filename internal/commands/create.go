package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/input"
	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
)

// CreateCmd creates the 'create' command for template-based projects
func CreateCmd() *cobra.Command {
	var (
		force    bool
		dryRun   bool
		basePath string
	)

	cmd := &cobra.Command{
		Use:   "create <project-name> <template|docker> [components...]",
		Short: "Create a project from a template",
		Long: `Creates a project from a static template or, with 'docker', a Docker
Compose stack assembled from the given components.

Examples:
  mkdf create notes simple
  mkdf create shop docker fastapi vue postgresql redis traefik
  mkdf create api docker flask mysql --backend-port 9000 --subnet 172.30.0.0/16`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			req := project.Request{
				ProjectName: args[0],
				Template:    args[1],
				Components:  args[2:],
				BasePath:    basePath,
				Ports:       portConfig(cmd, cfg.Ports),
				Overwrite:   force,
				DryRun:      dryRun,
			}
			if strings.EqualFold(req.Template, templates.Docker) && len(req.Components) == 0 {
				return errors.New("the docker template needs at least one component")
			}
			return runCreate(cmd.Context(), req)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing")
	cmd.Flags().StringVarP(&basePath, "path", "p", ".", "Directory to create the project in")
	addPortFlags(cmd)

	return cmd
}

// runCreate creates the project, asking before overwriting when a terminal
// is attached.
func runCreate(ctx context.Context, req project.Request) error {
	output.Verbose(fmt.Sprintf("Creating %s from template %s", req.ProjectName, req.Template))

	s := project.NewScaffolder(services.NewRegistry(), ports.NewAllocator(slog.Default()), output.Writer())
	res, err := s.CreateFromTemplate(ctx, req)
	if errors.Is(err, project.ErrProjectExists) && input.IsInteractive() {
		msg := fmt.Sprintf("Project '%s' already exists. Overwrite existing files?", req.ProjectName)
		if !input.Stdio().Confirm(msg, false) {
			output.Info("Cancelled")
			return nil
		}
		req.Overwrite = true
		res, err = s.CreateFromTemplate(ctx, req)
	}
	if err != nil {
		return err
	}

	if req.DryRun {
		output.Info(fmt.Sprintf("Dry run: %d paths would be created in %s", len(res.Report.Applied), res.Path))
		return nil
	}
	output.Success(fmt.Sprintf("Created project '%s' from template '%s'", req.ProjectName, req.Template))
	if n := len(res.Report.Skipped); n > 0 {
		output.Warn(fmt.Sprintf("%d existing paths were left untouched", n))
	}
	output.Info("Next steps:")
	output.Step(fmt.Sprintf("cd %s", res.Path))
	if strings.EqualFold(req.Template, templates.Docker) {
		output.Step("docker compose up --build")
	}
	return nil
}
