// Package paths resolves where gamestate keeps its files.
//
// Resolution order:
// 1. GAMESTATE_HOME (portable root) holds everything directly.
// 2. XDG env vars, as $XDG_DATA_HOME/gamestate and $XDG_STATE_HOME/gamestate.
// 3. Platform defaults, ~/.local/share/gamestate and ~/.local/state/gamestate.
package paths

import (
	"os"
	"path/filepath"
)

const (
	appName = "gamestate"

	// HomeEnv overrides every other location.
	HomeEnv = "GAMESTATE_HOME"

	SettingsFileName = "settings.toml"
	LogFileName      = "gamestate.log"
	PidFileName      = "watch.pid"
)

func getDataHome() string {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

func getStateHome() string {
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// DataDir returns the directory holding the settings, the session log and
// per-game data.
func DataDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// StateDir returns the directory for runtime state such as pid files.
func StateDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, "state")
	}
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// SettingsPath returns the default settings file inside dataDir, or inside
// DataDir() when dataDir is empty.
func SettingsPath(dataDir string) string {
	return filepath.Join(orDefault(dataDir), SettingsFileName)
}

// LogPath returns the session log file inside dataDir, or inside DataDir()
// when dataDir is empty.
func LogPath(dataDir string) string {
	return filepath.Join(orDefault(dataDir), LogFileName)
}

// PidFilePath returns the pid file guarding the settings watcher.
func PidFilePath() string {
	return filepath.Join(StateDir(), PidFileName)
}

// EnsureDirs creates the data and state directories.
func EnsureDirs() error {
	for _, dir := range []string{DataDir(), StateDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func orDefault(dataDir string) string {
	if dataDir != "" {
		return dataDir
	}
	return DataDir()
}
