package logging

//go:generate sh -c "cd .. && go run ./tools/logging-schema-generator/"

import (
	"fmt"

	"github.com/grovetools/gamestate/config"
)

// ExtensionKey is the settings section holding logging configuration.
const ExtensionKey = "logging"

// Config defines the "logging" section of the settings file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the GAMESTATE_LOG_LEVEL environment variable.
	Level string `yaml:"level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with the GAMESTATE_LOG_CALLER=true environment variable.
	ReportCaller bool `yaml:"report_caller"`

	// File configures an additional file sink next to the session log.
	File FileSinkConfig `yaml:"file"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr controls when structured logs are sent to stderr.
	// Can be "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr"`
}

// ConfigFromSettings decodes the logging section of settings. Settings
// without one yield the zero Config.
func ConfigFromSettings(settings *config.Settings) (Config, error) {
	var cfg Config
	if settings == nil {
		return cfg, nil
	}
	if err := settings.UnmarshalExtension(ExtensionKey, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid '%s' settings: %w", ExtensionKey, err)
	}
	return cfg, nil
}
