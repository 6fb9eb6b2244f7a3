package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrettyLogger writes human-oriented console lines for CLI output.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles contains lipgloss styles for different line types
type PrettyStyles struct {
	Success  lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Path     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty output
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewPrettyLogger returns a pretty logger writing to stdout.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stdout,
		styles: DefaultPrettyStyles(),
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Success.Render("✓"),
		p.styles.Success.Render(message))
}

func (p *PrettyLogger) Info(message string) {
	fmt.Fprintf(p.writer, "%s\n", p.styles.Info.Render(message))
}

func (p *PrettyLogger) Warn(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.styles.Warning.Render("⚠"),
		p.styles.Warning.Render(message))
}

// Error prints message, followed by err when it is non-nil.
func (p *PrettyLogger) Error(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s",
		p.styles.Error.Render("✗"),
		p.styles.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", p.styles.Error.Render(err.Error()))
	}
	fmt.Fprintln(p.writer)
}

// Field prints a key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(key),
		p.styles.Value.Render(fmt.Sprint(value)))
}

// Path prints a labelled file path.
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Key.Render(label),
		p.styles.Path.Render(path))
}

// Item prints one entry of a list, marking the selected one.
func (p *PrettyLogger) Item(label, detail string, selected bool) {
	marker := "  "
	style := p.styles.Info
	if selected {
		marker = p.styles.Selected.Render("* ")
		style = p.styles.Selected
	}
	line := marker + style.Render(label)
	if detail != "" {
		line += " " + p.styles.Muted.Render(detail)
	}
	fmt.Fprintln(p.writer, line)
}

// Divider prints a visual divider
func (p *PrettyLogger) Divider() {
	fmt.Fprintln(p.writer, p.styles.Key.Render(strings.Repeat("─", 60)))
}

func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}
