package errors

import (
	"fmt"
)

// GameNotDetected is returned when selection runs against an empty collection.
func GameNotDetected() *GameError {
	return New(ErrCodeGameNotDetected, "None of the supported games were detected.")
}

// GameNotFound creates an error for a folder name that matches no detected game
func GameNotFound(folder string) *GameError {
	return New(ErrCodeGameNotFound, fmt.Sprintf("no installed game with folder '%s'", folder)).
		WithDetail("folder", folder)
}

// NoGameSelected creates an error for accessing the current game before one is selected
func NoGameSelected() *GameError {
	return New(ErrCodeNoGameSelected, "no game is currently selected")
}

// GameInitFailed wraps a game initialisation failure
func GameInitFailed(folder string, err error) *GameError {
	return Wrap(err, ErrCodeGameInit, fmt.Sprintf("failed to initialise game '%s'", folder)).
		WithDetail("folder", folder)
}

// SettingsNotFound creates a settings file not found error
func SettingsNotFound(path string) *GameError {
	return New(ErrCodeSettingsNotFound, fmt.Sprintf("settings file not found: %s", path)).
		WithDetail("path", path)
}

// SettingsInvalid creates an invalid settings error
func SettingsInvalid(reason string) *GameError {
	return New(ErrCodeSettingsInvalid, fmt.Sprintf("invalid settings: %s", reason))
}

// DataDirCreate wraps a failure to create the application data directory
func DataDirCreate(path string, err error) *GameError {
	return Wrap(err, ErrCodeDataDirCreate, fmt.Sprintf("could not create data directory: %s", path)).
		WithDetail("path", path)
}
