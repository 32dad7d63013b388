package output

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

// Spin runs fn while a spinner labelled label animates on the terminal.
// When output is not a terminal fn simply runs.
func Spin(label string, fn func() error) error {
	f, ok := Writer().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fn()
	}

	prog := tea.NewProgram(newSpinner(label), tea.WithOutput(f), tea.WithInput(nil))
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_, _ = prog.Run()
	}()

	err := fn()
	prog.Send(finished{err: err})
	<-stopped
	return err
}

// finished ends the spinner with fn's outcome.
type finished struct{ err error }

type spinnerView struct {
	label  string
	ticker spinner.Model
	result *finished
}

func newSpinner(label string) *spinnerView {
	return &spinnerView{
		label:  label,
		ticker: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
	}
}

func (v *spinnerView) Init() tea.Cmd { return v.ticker.Tick }

func (v *spinnerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.result != nil {
		return v, nil
	}
	if f, ok := msg.(finished); ok {
		v.result = &f
		return v, tea.Quit
	}
	var cmd tea.Cmd
	v.ticker, cmd = v.ticker.Update(msg)
	return v, cmd
}

func (v *spinnerView) View() string {
	switch {
	case v.result == nil:
		return v.ticker.View() + " " + v.label + "..."
	case v.result.err != nil:
		return errorStyle.Render("❌ "+v.label) + "\n"
	default:
		return successStyle.Render("✓ "+v.label) + "\n"
	}
}
