package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
)

// PatternCmd creates the 'pattern' command for brace-pattern creation
func PatternCmd() *cobra.Command {
	var (
		force    bool
		dryRun   bool
		basePath string
	)

	cmd := &cobra.Command{
		Use:   "pattern <brace-pattern>",
		Short: "Create directories and files from a brace pattern",
		Long: `Expands a brace pattern and creates every resulting path. Paths whose
last segment has an extension become empty files, the rest directories.

Quote the pattern so the shell does not expand it first.

Examples:
  mkdf pattern 'app/{src/{main,utils}.py,docs,tests/test_{a,b}.py}'
  mkdf pattern 'logs/day{01..07}.log'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern := args[0]

			paths := brace.Expand(pattern)
			output.Verbose(fmt.Sprintf("Pattern expands to %d paths:\n%s", len(paths), brace.Tree(paths)))

			s := project.NewScaffolder(services.NewRegistry(), ports.NewAllocator(slog.Default()), output.Writer())
			res, err := s.CreateFromPattern(ctx, pattern, basePath, force, dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				output.Info(fmt.Sprintf("Dry run: %d paths would be created", len(res.Report.Applied)))
				return nil
			}
			output.Success(fmt.Sprintf("Created %d paths in %s", len(res.Report.Applied), res.Path))
			if n := len(res.Report.Skipped); n > 0 {
				output.Warn(fmt.Sprintf("%d existing paths were skipped (use --force to overwrite files)", n))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be created without writing")
	cmd.Flags().StringVarP(&basePath, "path", "p", ".", "Directory the pattern is created in")

	return cmd
}
