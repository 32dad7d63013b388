// Package output prints styled status lines for the mkdf CLI.
//
// Commands never format terminal text themselves; they call Success, Error,
// Warn, Info, Step and Verbose so every message shares the same look.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose toggles Verbose messages. The root command wires it to --verbose.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects all output and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Writer returns the current destination, for code that streams its own lines.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success reports a completed operation.
//
//	output.Success("Project 'shop' created")
func Success(msg string) {
	emit(successStyle.Render("✨ " + msg))
}

// Error reports a failure that stops the command.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn reports something skipped or degraded that did not stop the command.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status update or section heading.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item, such as a next step.
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints debug detail only when verbose mode is on.
func Verbose(msg string) {
	mu.Lock()
	on := verboseMode
	mu.Unlock()
	if on {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
