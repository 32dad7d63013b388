// Package input asks the user questions on the terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over arbitrary streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Stdio returns a Prompter bound to the process terminal.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stdout)
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (p *Prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Prompt asks for free text. An empty answer or closed input yields defaultValue.
//
//	name := p.Prompt("Project name", "my-app")
//	// Project name (my-app): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks a yes/no question. Only y or yes (any case) count as yes.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Choose lists options and returns the one picked by number or by name.
// An empty answer picks the first option; anything unrecognized is asked again
// until input runs out, at which point the first option is returned.
func (p *Prompter) Choose(message string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %s %s\n", hintStyle.Render(strconv.Itoa(i+1)+"."), opt)
	}
	for {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render("(1)")+": ")
		answer, ok := p.readLine()
		if !ok || answer == "" {
			return options[0]
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
			return options[n-1]
		}
		for _, opt := range options {
			if strings.EqualFold(opt, answer) {
				return opt
			}
		}
	}
}

// List asks for a comma or space separated list of values.
func (p *Prompter) List(message string) []string {
	raw := p.Prompt(message, "")
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
