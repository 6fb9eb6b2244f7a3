package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const (
	envLogLevel  = "GAMESTATE_LOG_LEVEL"
	envLogCaller = "GAMESTATE_LOG_CALLER"
	envDebug     = "GAMESTATE_DEBUG"
)

// All component loggers share one process-wide logrus.Logger, so verbosity
// and sink changes reach every component at once.
var (
	mu       sync.Mutex
	base     *logrus.Logger
	loggers  = make(map[string]*logrus.Entry)
	current  Config
	console  io.Writer = os.Stderr
	logFile  *os.File
	sinkFile *os.File
)

// NewLogger returns the logger for a component. Entries are cached per
// component and all write through the shared logger.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	entry := baseLocked().WithField("component", component)
	loggers[component] = entry
	return entry
}

func baseLocked() *logrus.Logger {
	if base == nil {
		base = logrus.New()
		applyLocked(Config{})
	}
	return base
}

// Configure applies cfg to the shared logger. The GAMESTATE_LOG_LEVEL and
// GAMESTATE_LOG_CALLER environment variables take precedence over cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	baseLocked()
	applyLocked(cfg)
}

func applyLocked(cfg Config) {
	current = cfg

	levelStr := "info"
	if env := os.Getenv(envLogLevel); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	base.SetReportCaller(os.Getenv(envLogCaller) == "true" || cfg.ReportCaller)

	switch cfg.Format.Preset {
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		base.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		base.SetFormatter(&TextFormatter{Config: cfg.Format})
	}

	if sinkFile != nil {
		sinkFile.Close()
		sinkFile = nil
	}
	if cfg.File.Enabled && cfg.File.Path != "" {
		file, err := openLogFile(expandPath(cfg.File.Path), os.O_APPEND)
		if err != nil {
			base.Warnf("Failed to open log file %s: %v", cfg.File.Path, err)
		} else {
			sinkFile = file
		}
	}

	rebuildOutputLocked()
}

// EnvLevelSet reports whether GAMESTATE_LOG_LEVEL pins the log level.
func EnvLevelSet() bool {
	return os.Getenv(envLogLevel) != ""
}

// SetVerbosity sets the minimum level written by every component logger.
func SetVerbosity(level logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	baseLocked().SetLevel(level)
	rebuildOutputLocked()
}

// EnableDebugLogging switches between logging everything (trace) and logging
// warnings and errors only.
func EnableDebugLogging(enable bool) {
	if enable {
		SetVerbosity(logrus.TraceLevel)
	} else {
		SetVerbosity(logrus.WarnLevel)
	}
}

// Verbosity returns the current minimum level.
func Verbosity() logrus.Level {
	mu.Lock()
	defer mu.Unlock()
	return baseLocked().GetLevel()
}

// SetLogFile directs log output to the file at path, replacing the file
// opened by a previous call. The file is truncated so it only holds the
// current session.
func SetLogFile(path string) error {
	file, err := openLogFile(path, os.O_TRUNC)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	baseLocked()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	rebuildOutputLocked()
	return nil
}

// CloseLogFile detaches and closes the session log file, if any.
func CloseLogFile() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if base != nil {
		rebuildOutputLocked()
	}
	return err
}

// SetConsole replaces the writer used for console output (stderr by default).
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	baseLocked()
	console = w
	rebuildOutputLocked()
}

func openLogFile(path string, mode int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|mode, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}

func rebuildOutputLocked() {
	var writers []io.Writer
	if logFile != nil {
		writers = append(writers, logFile)
	}
	if sinkFile != nil {
		writers = append(writers, sinkFile)
	}
	if shouldLogToConsoleLocked() {
		writers = append(writers, console)
	}

	switch len(writers) {
	case 0:
		base.SetOutput(io.Discard)
	case 1:
		base.SetOutput(writers[0])
	default:
		base.SetOutput(io.MultiWriter(writers...))
	}
}

func shouldLogToConsoleLocked() bool {
	mode := current.Format.StructuredToStderr
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// auto: only when debugging, or when stderr is not an interactive terminal
	if os.Getenv(envDebug) == "1" || base.GetLevel() >= logrus.DebugLevel {
		return true
	}
	f, ok := console.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
