package state

import (
	"os"

	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/locale"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/pkg/profiling"
	"github.com/grovetools/gamestate/version"
)

// InitOptions configures Registry.Init.
type InitOptions struct {
	// DataDir holds per-game data. It replaces the directory given to
	// NewRegistry when set.
	DataDir string
	// SettingsPath is read if it exists. A missing file means defaults.
	SettingsPath string
	// LogPath receives the session log. Empty leaves log output alone.
	LogPath string
	// Game is the preferred game from the command line. It beats both the
	// preferred and last game settings.
	Game string
	// Version is the running application version, version.Version if empty.
	Version string
	// Profiler times the bootstrap steps when set.
	Profiler *profiling.Profiler
}

// Init bootstraps the registry: it prepares the data directory, loads the
// settings, configures logging and the message language, detects the
// installed games and selects and initialises the current one.
//
// Problems that still leave a usable registry are recorded in InitErrors and
// do not fail Init. Only finding no installed game at all is returned as an
// error.
func (r *Registry) Init(opts InitOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if opts.DataDir != "" {
		r.dataDir = opts.DataDir
	}
	running := opts.Version
	if running == "" {
		running = version.Version
	}
	prof := opts.Profiler
	if prof == nil {
		prof = profiling.Disabled()
	}

	if err := locale.SetLocale(locale.DefaultLanguage); err != nil {
		r.logger.WithError(err).Warn("Could not reset the message language")
	}

	prof.Time("data directory", func() {
		if _, err := os.Stat(r.dataDir); os.IsNotExist(err) {
			r.logger.Infof("Data directory %s doesn't exist, creating it.", r.dataDir)
		}
		if err := os.MkdirAll(r.dataDir, 0755); err != nil {
			r.addInitError(locale.MsgDataDirCreateFailed, describe(errors.DataDirCreate(r.dataDir, err)))
		}
	})

	prof.Time("settings", func() {
		if opts.SettingsPath == "" {
			return
		}
		if _, err := os.Stat(opts.SettingsPath); err != nil {
			return
		}
		if err := r.store.Load(opts.SettingsPath); err != nil {
			r.addInitError(locale.MsgSettingsParseFailed, describe(err))
		}
	})

	prof.Time("logging", func() {
		if opts.LogPath != "" {
			if err := logging.SetLogFile(opts.LogPath); err != nil {
				r.logger.WithError(err).Warn("Could not open the log file")
			}
		}
		r.applyLogging()

		info := version.GetInfo()
		r.logger.Infof("gamestate version: %s+%s", running, info.Commit)
		r.updated = version.IsNewer(running, r.store.LastVersion())
		if r.updated {
			r.logger.Infof("First run since updating from %s", r.store.LastVersion())
		}
	})

	if lang := r.store.Language(); lang != locale.DefaultLanguage {
		r.logger.Debugf("Selected language: %s", lang)
		if err := locale.SetLocale(lang); err != nil {
			r.logger.WithError(err).Warn("Ignoring language setting")
		}
	}

	prof.Time("detection", func() {
		r.logger.Debug("Detecting installed games.")
		r.games = nil
		r.current = ""
		for _, gs := range r.store.Games() {
			if r.detector.IsInstalled(gs) {
				r.logger.Tracef("Adding new installed game entry for: %s", gs.FolderName)
				g := r.detector.Construct(gs, r.dataDir)
				r.games = append(r.games, g)
				r.updateStoredGamePathSetting(g)
			}
		}
	})

	r.logger.Debug("Selecting game.")
	if err := r.selectGame(opts.Game); err != nil {
		r.logger.Errorf("Game-specific settings could not be initialised. %v", err)
		r.addInitError(locale.MsgGameInitFailed, describe(err))
		return err
	}

	g := r.currentLocked()
	r.logger.Debugf("Game selected is %s", g.Name())
	var initErr error
	prof.Time("game init", func() {
		r.logger.Debug("Initialising game-specific settings.")
		initErr = g.Init()
	})
	if initErr != nil {
		r.logger.Errorf("Game-specific settings could not be initialised. %v", initErr)
		r.addInitError(locale.MsgGameInitFailed, describe(initErr))
	}

	return nil
}

func (r *Registry) addInitError(key string, detail string) {
	r.initErrors = append(r.initErrors, locale.Sprintf(key, detail))
}

// describe renders err for an init error message, without the error code
// prefix.
func describe(err error) string {
	if errors.Is(err, errors.ErrCodeGameNotDetected) {
		return locale.Sprintf(locale.MsgNoGamesDetected)
	}
	if gameErr, ok := errors.As(err); ok {
		if gameErr.Cause != nil {
			return gameErr.Message + ": " + gameErr.Cause.Error()
		}
		return gameErr.Message
	}
	return err.Error()
}
