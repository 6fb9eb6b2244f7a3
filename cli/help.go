package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 60
const minWidth = 40

// helpStyles is the palette used by the styled help output.
type helpStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	command lipgloss.Style
	sub     lipgloss.Style
	flag    lipgloss.Style
	muted   lipgloss.Style
	italic  lipgloss.Style
	err     lipgloss.Style
}

func defaultHelpStyles() helpStyles {
	return helpStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		section: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("208")),
		command: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		sub:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		italic:  lipgloss.NewStyle().Italic(true),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to width, keeping existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			lines = append(lines, paragraph)
			continue
		}
		var line string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// SetStyledHelp applies the styled help to cmd. Subcommands inherit it.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// PrintError prints a styled error to stderr with a help hint.
func PrintError(cmd *cobra.Command, err error) {
	s := defaultHelpStyles()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", s.err.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", s.muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// splitExamples separates an "Examples:" section from a long description.
func splitExamples(long string) (description string, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

func renderExamples(w io.Writer, s helpStyles, examples string, cmdPath string) {
	rootCmd := strings.Fields(cmdPath)[0]
	for _, line := range strings.Split(examples, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			fmt.Fprintln(w)
		case strings.HasPrefix(trimmed, "#"):
			fmt.Fprintln(w, " "+s.muted.Render(trimmed))
		default:
			fmt.Fprintln(w, " "+styleCommandLine(s, trimmed, rootCmd))
		}
	}
}

// styleCommandLine colours the program name, the subcommand and the flags of
// an example command line.
func styleCommandLine(s helpStyles, line, rootCmd string) string {
	parts := strings.Fields(line)
	for i, part := range parts {
		switch {
		case i == 0 && part == rootCmd:
			parts[i] = s.command.Render(part)
		case i == 1 && !strings.HasPrefix(part, "-"):
			parts[i] = s.sub.Render(part)
		case strings.HasPrefix(part, "-"):
			parts[i] = s.flag.Render(part)
		}
	}
	return "  " + strings.Join(parts, " ")
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	s := defaultHelpStyles()
	w := cmd.OutOrStdout()
	width := getTerminalWidth() - 2

	fmt.Fprintln(w, " "+s.title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := splitExamples(cmd.Long)
	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(w, " "+s.italic.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(w, "\n "+s.section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(w, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		maxLen := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
				maxLen = len(sub.Name())
			}
		}
		fmt.Fprintln(w, "\n "+s.section.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				padding := strings.Repeat(" ", maxLen-len(sub.Name()))
				fmt.Fprintf(w, " %s%s  %s\n", s.command.Render(sub.Name()), padding, sub.Short)
			}
		}
	}

	var visible []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visible = append(visible, f)
		}
	})
	if len(visible) > 0 {
		if cmd.HasAvailableSubCommands() {
			names := make([]string, 0, len(visible))
			for _, f := range visible {
				names = append(names, strings.TrimSpace(formatFlagName(f)))
			}
			fmt.Fprintln(w, "\n "+s.muted.Render("Flags: "+strings.Join(names, ", ")))
		} else {
			fmt.Fprintln(w, "\n "+s.section.Render("FLAGS"))
			maxLen := 0
			for _, f := range visible {
				if l := len(formatFlagName(f)); l > maxLen {
					maxLen = l
				}
			}
			for _, f := range visible {
				name := formatFlagName(f)
				usage := f.Usage
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
					usage += s.muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
				}
				fmt.Fprintf(w, " %s%s  %s\n", s.flag.Render(name), strings.Repeat(" ", maxLen-len(name)), usage)
			}
		}
	}

	exampleText := cmd.Example
	if exampleText == "" {
		exampleText = examples
	}
	if exampleText != "" {
		fmt.Fprintln(w, "\n "+s.section.Render("EXAMPLES"))
		renderExamples(w, s, exampleText, cmd.CommandPath())
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// formatFlagName returns "-f, --flag", or "    --flag" without a shorthand.
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
