package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitColor forces true colour output when CLICOLOR_FORCE=1 or
// COLORTERM=truecolor, so styled output survives pipes in CI. It has no
// effect otherwise. Call it at the start of main.
func InitColor() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
