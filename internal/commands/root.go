package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf"
	"github.com/Noziop/mkdf/internal/combo"
	"github.com/Noziop/mkdf/internal/config"
	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
)

// RootCmd creates and returns the root command for the mkdf CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mkdf",
		Short: "Create project structures from patterns and templates",
		Long: `mkdf creates directory trees from brace patterns and scaffolds
projects from templates, including multi-service Docker Compose stacks.

Examples:
  mkdf pattern 'app/{src/{main,utils}.py,docs,tests/test_{a,b}.py}'
  mkdf create shop docker fastapi vue postgresql redis
  mkdf create notes simple`,
		Version:       mkdf.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Path to config file (default ./mkdf.yml or ~/.config/mkdf/mkdf.yml)")

	return cmd
}

// NewApp returns the root command with every subcommand attached.
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(CreateCmd())
	root.AddCommand(PatternCmd())
	root.AddCommand(InteractiveCmd())
	root.AddCommand(WebCmd())
	root.AddCommand(ComponentsCmd())
	root.AddCommand(ComposeCmd())
	return root
}

// Execute runs the CLI and reports a failure with a hint.
func Execute(ctx context.Context) error {
	err := NewApp().ExecuteContext(ctx)
	if err != nil {
		output.Error(err.Error())
		if h := hint(err); h != "" {
			output.Step(h)
		}
	}
	return err
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		output.Verbose(fmt.Sprintf("Using config file: %s", cfg.Source))
	}
	return cfg, nil
}

func hint(err error) string {
	var conflict *ports.ConflictError
	var missing *combo.MissingDependencyError
	switch {
	case errors.Is(err, services.ErrUnknownService):
		return "Run 'mkdf components' to list available components."
	case errors.Is(err, templates.ErrUnknownTemplate):
		return "Run 'mkdf components' to list available templates."
	case errors.Is(err, combo.ErrMultipleDatabases):
		return "Pick a single database component."
	case errors.Is(err, combo.ErrMultipleComponents):
		return "Pick one backend and one frontend."
	case errors.As(err, &conflict):
		return "Set distinct ports with the --*-port flags or in mkdf.yml."
	case errors.As(err, &missing):
		return fmt.Sprintf("Add %s to the component list.", missing.Dependency)
	case errors.Is(err, project.ErrProjectExists):
		return "Use --force to overwrite existing files."
	case errors.Is(err, project.ErrInvalidName):
		return "Project names are a single directory name."
	case errors.Is(err, ports.ErrNoFreePort), errors.Is(err, ports.ErrNoFreeSubnet):
		return "Free some ports or networks, or set them explicitly."
	}
	return ""
}
