package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/game"
)

// ErrorHandler prints errors with a hint on how to fix them.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	gameErr, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeGameNotDetected:
		fmt.Fprintf(h.Out, "❌ No supported game is installed.\n")
		fmt.Fprintf(h.Out, "Set the game path in the settings file, or add Steam library folders to %s.\n", game.LibraryPathEnv)

	case errors.ErrCodeGameNotFound:
		fmt.Fprintf(h.Out, "❌ Game '%v' is not installed\n", gameErr.Details["folder"])
		fmt.Fprintf(h.Out, "Run 'gamestate games' to see the installed games.\n")

	case errors.ErrCodeSettingsNotFound:
		fmt.Fprintf(h.Out, "❌ Settings file not found: %v\n", gameErr.Details["path"])
		fmt.Fprintf(h.Out, "Run 'gamestate select <folder>' to create one.\n")

	case errors.ErrCodeSettingsInvalid, errors.ErrCodeSettingsValidation:
		fmt.Fprintf(h.Out, "❌ %s\n", gameErr.Message)
		if path, ok := gameErr.Details["path"]; ok {
			fmt.Fprintf(h.Out, "Fix %v, or run 'gamestate schema' to see the expected format.\n", path)
		}

	case errors.ErrCodeAlreadyRunning:
		fmt.Fprintf(h.Out, "❌ A settings watcher is already running (PID %v)\n", gameErr.Details["pid"])
		fmt.Fprintf(h.Out, "Stop it first, or remove %v if the process is gone.\n", gameErr.Details["pidfile"])

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && gameErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", gameErr.ToJSON())
	}
	return err
}
