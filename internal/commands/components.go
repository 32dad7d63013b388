package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Noziop/mkdf/internal/output"
	"github.com/Noziop/mkdf/internal/services"
	"github.com/Noziop/mkdf/internal/templates"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// ComponentsCmd creates the 'components' command listing components and templates
func ComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "components",
		Aliases: []string{"list"},
		Short:   "List available components and templates",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reg := services.NewRegistry()
			w := output.Writer()

			fmt.Fprintln(w, headingStyle.Render("Docker components"))
			for _, g := range reg.Groups() {
				fmt.Fprintf(w, "  %-12s %s\n", g.Title, strings.Join(g.Components, ", "))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Templates"))
			for _, c := range templates.NewCatalog(reg).Categories() {
				fmt.Fprintf(w, "  %-12s %s\n", c.Title, strings.Join(c.Templates, ", "))
			}
			fmt.Fprintf(w, "  %-12s %s\n", "Docker", templates.Docker+" <components...>")
		},
	}
}
