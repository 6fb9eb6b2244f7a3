package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Game registry errors
	ErrCodeGameNotDetected ErrorCode = "GAME_NOT_DETECTED"
	ErrCodeGameNotFound    ErrorCode = "GAME_NOT_FOUND"
	ErrCodeNoGameSelected  ErrorCode = "NO_GAME_SELECTED"
	ErrCodeGameInit        ErrorCode = "GAME_INIT_FAILED"

	// Settings errors
	ErrCodeSettingsNotFound   ErrorCode = "SETTINGS_NOT_FOUND"
	ErrCodeSettingsInvalid    ErrorCode = "SETTINGS_INVALID"
	ErrCodeSettingsValidation ErrorCode = "SETTINGS_VALIDATION"
	ErrCodeSettingsWrite      ErrorCode = "SETTINGS_WRITE"

	// Filesystem errors
	ErrCodeDataDirCreate  ErrorCode = "DATA_DIR_CREATE"
	ErrCodeAlreadyRunning ErrorCode = "ALREADY_RUNNING"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// GameError represents a structured error with context
type GameError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GameError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *GameError) WithDetail(key string, value interface{}) *GameError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *GameError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new GameError
func New(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GameError
func Wrap(err error, code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is reports whether err, or any error it wraps, is a GameError with the given code.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	gameErr, ok := err.(*GameError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if gameErr.Code == code {
		return true
	}
	return Is(gameErr.Cause, code)
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	gameErr, ok := err.(*GameError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return gameErr.Code
}

// As returns the outermost GameError in err's chain, if any.
func As(err error) (*GameError, bool) {
	for err != nil {
		if gameErr, ok := err.(*GameError); ok {
			return gameErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}
