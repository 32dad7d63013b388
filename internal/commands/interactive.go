package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/brace"
	"github.com/Noziop/mkdf/internal/input"
	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/ports"
	"github.com/Noziop/mkdf/internal/project"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
)

const (
	modeTemplate = "template"
	modePattern  = "pattern"
)

// InteractiveCmd creates the 'interactive' command with guided prompts
func InteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Create a project by answering prompts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !input.IsInteractive() {
				return errors.New("interactive mode needs a terminal; use 'mkdf create' or 'mkdf pattern' instead")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s := project.NewScaffolder(services.NewRegistry(), ports.NewAllocator(slog.Default()), output.Writer())
			return guided(cmd.Context(), input.Stdio(), s, cfg.Ports)
		},
	}
}

// guided asks what to create and creates it.
func guided(ctx context.Context, p *input.Prompter, s *project.Scaffolder, pc ports.Config) error {
	mode := p.Choose("What do you want to create?", []string{modeTemplate, modePattern})
	base := p.Prompt("Base directory", ".")

	if mode == modePattern {
		pattern := p.Prompt("Brace pattern", "")
		paths := brace.Expand(pattern)
		fmt.Fprintln(output.Writer(), brace.Tree(paths))
		if !p.Confirm(fmt.Sprintf("Create these %d paths?", len(paths)), true) {
			output.Info("Cancelled")
			return nil
		}
		res, err := s.CreateFromPattern(ctx, pattern, base, false, false)
		if err != nil {
			return err
		}
		output.Success(fmt.Sprintf("Created %d paths in %s", len(res.Report.Applied), res.Path))
		return nil
	}

	name := p.Prompt("Project name", "my-project")
	if err := project.ValidateName(name); err != nil {
		return err
	}
	tmpl := p.Choose("Template", s.Catalog.Names())

	req := project.Request{ProjectName: name, Template: tmpl, BasePath: base, Ports: pc}
	if strings.EqualFold(tmpl, templates.Docker) {
		for _, g := range s.Combo.Registry.Groups() {
			output.Step(fmt.Sprintf("%-12s %s", g.Title, strings.Join(g.Components, ", ")))
		}
		req.Components = p.List("Components (comma or space separated)")
		if len(req.Components) == 0 {
			return errors.New("no components selected")
		}
	}

	res, err := s.CreateFromTemplate(ctx, req)
	if errors.Is(err, project.ErrProjectExists) {
		if !p.Confirm(fmt.Sprintf("Project '%s' already exists. Overwrite existing files?", name), false) {
			output.Info("Cancelled")
			return nil
		}
		req.Overwrite = true
		res, err = s.CreateFromTemplate(ctx, req)
	}
	if err != nil {
		return err
	}
	output.Success(fmt.Sprintf("Created project '%s' in %s", name, res.Path))
	return nil
}
