// Package state tracks the installed games of a session and which one is
// current.
package state

import (
	"strings"
	"sync"

	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/game"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/util/pathutil"
	"github.com/grovetools/gamestate/version"
	"github.com/sirupsen/logrus"
)

// SettingsStore is the persisted settings document the registry reads game
// records and preferences from and writes resolved paths back to.
type SettingsStore interface {
	Load(path string) error
	Save(path string) error
	Replace(settings *config.Settings)
	Snapshot() *config.Settings

	Games() []config.GameSettings
	StoreGames(games []config.GameSettings)

	Game() string
	LastGame() string
	StoreLastGame(folder string)

	Language() string
	DebugLoggingEnabled() bool
	LastVersion() string
	UpdateLastVersion(version string)
}

// Registry owns the sessions of the installed games and the current
// selection. The selection is held as a folder identity rather than a
// position, so adding or removing sessions never leaves it dangling.
//
// All exported methods are safe for concurrent use. Unexported helpers
// expect mu to be held.
type Registry struct {
	mu sync.Mutex

	store    SettingsStore
	detector game.Detector
	dataDir  string

	games      []*game.Game
	current    string
	unapplied  int
	initErrors []string
	updated    bool

	logger *logrus.Entry
}

// NewRegistry returns an empty registry. Game data directories are created
// under dataDir.
func NewRegistry(store SettingsStore, detector game.Detector, dataDir string) *Registry {
	return &Registry{
		store:    store,
		detector: detector,
		dataDir:  dataDir,
		logger:   logging.NewLogger("registry"),
	}
}

// Load reconciles the sessions with settings. Existing sessions are updated
// in place, newly configured games that are installed are added, and sessions
// whose game is no longer configured are dropped. If the current game was
// dropped (or none was selected) a new one is picked, and the current game is
// initialised again in case its path changed.
func (r *Registry) Load(settings *config.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.Replace(settings)
	r.applyLogging()

	kept := make(map[string]bool)
	r.logger.Trace("Updating existing games and adding new games.")
	for _, gs := range r.store.Games() {
		if i := r.indexOf(gs.FolderName); i >= 0 {
			existing := r.games[i]
			path := existing.GamePath()
			if gs.Path != "" {
				path = gs.Path
				if expanded, err := pathutil.Expand(gs.Path); err == nil {
					path = expanded
				} else {
					r.logger.WithError(err).Debugf("Could not expand path for %s", gs.FolderName)
				}
			}
			existing.SetName(gs.Name).
				SetMaster(gs.Master).
				SetRepoURL(gs.RepoURL).
				SetRepoBranch(gs.RepoBranch).
				SetGamePath(path).
				SetRegistryKey(gs.RegistryKey)
			if path != gs.Path {
				r.updateStoredGamePathSetting(existing)
			}
		} else if r.detector.IsInstalled(gs) {
			r.logger.Tracef("Adding new installed game entry for: %s", gs.FolderName)
			g := r.detector.Construct(gs, r.dataDir)
			r.games = append(r.games, g)
			r.updateStoredGamePathSetting(g)
		}
		kept[strings.ToLower(gs.FolderName)] = true
	}

	r.logger.Trace("Removing deleted games.")
	remaining := r.games[:0]
	for _, g := range r.games {
		if kept[strings.ToLower(g.FolderName())] {
			remaining = append(remaining, g)
		} else {
			r.logger.Tracef("Removing game: %s", g.FolderName())
		}
	}
	for i := len(remaining); i < len(r.games); i++ {
		r.games[i] = nil
	}
	r.games = remaining

	if r.indexOf(r.current) < 0 {
		if err := r.selectGame(""); err != nil {
			return err
		}
	}

	return r.currentLocked().Init()
}

// ReloadFrom parses the settings file at path and reconciles with it.
func (r *Registry) ReloadFrom(path string) error {
	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	return r.Load(settings)
}

// selectGame picks the current game. An empty preference falls back to the
// preferred game setting, then the last used game. A preference that matches
// nothing selects the first installed game.
func (r *Registry) selectGame(preferred string) error {
	if preferred == "" {
		if g := r.store.Game(); g != config.AutoGame {
			preferred = g
		} else if g := r.store.LastGame(); g != config.AutoGame {
			preferred = g
		}
	}

	if len(r.games) == 0 {
		r.current = ""
		return errors.GameNotDetected()
	}

	selected := r.games[0]
	if i := r.indexOf(preferred); i >= 0 {
		selected = r.games[i]
	} else if preferred != "" {
		r.logger.Debugf("Preferred game %s is not installed, using %s", preferred, selected.FolderName())
	}
	r.current = selected.FolderName()
	return nil
}

// ChangeGame makes the game with the given folder current and initialises it.
// An unknown folder leaves the selection unchanged. If initialisation fails
// the new game stays selected.
func (r *Registry) ChangeGame(folder string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debugf("Changing current game to that with folder: %s", folder)
	i := r.indexOf(folder)
	if i < 0 {
		return errors.GameNotFound(folder)
	}

	g := r.games[i]
	r.current = g.FolderName()
	if err := g.Init(); err != nil {
		return err
	}
	r.logger.Debugf("New game is %s", g.Name())
	return nil
}

// CurrentGame returns the session of the current game.
func (r *Registry) CurrentGame() (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.currentLocked()
	if g == nil {
		return nil, errors.NoGameSelected()
	}
	return g, nil
}

// CurrentSettings returns a copy of the current game's settings record.
func (r *Registry) CurrentSettings() (config.GameSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.currentLocked()
	if g == nil {
		return config.GameSettings{}, errors.NoGameSelected()
	}
	return g.Settings(), nil
}

// InstalledGames returns the folder names of the installed games in
// detection order.
func (r *Registry) InstalledGames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders := make([]string, 0, len(r.games))
	for _, g := range r.games {
		folders = append(folders, g.FolderName())
	}
	return folders
}

// Sessions returns the settings records of the installed games as the
// sessions currently see them.
func (r *Registry) Sessions() []config.GameSettings {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]config.GameSettings, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g.Settings())
	}
	return out
}

func (r *Registry) HasUnappliedChanges() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unapplied > 0
}

func (r *Registry) IncrementUnappliedChangeCounter() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unapplied++
}

// DecrementUnappliedChangeCounter lowers the counter. It never goes below zero.
func (r *Registry) DecrementUnappliedChangeCounter() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unapplied > 0 {
		r.unapplied--
	}
}

// UpdateStoredGamePathSetting writes the session's install path back to the
// matching settings record.
func (r *Registry) UpdateStoredGamePathSetting(g *game.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateStoredGamePathSetting(g)
}

func (r *Registry) updateStoredGamePathSetting(g *game.Game) {
	games := r.store.Games()
	for i := range games {
		if g.Matches(games[i]) {
			games[i].Path = g.GamePath()
			r.store.StoreGames(games)
			return
		}
	}
	r.logger.Errorf("Could not find the settings for the current game (%s)", g.Name())
}

// Save records the current game as the last game and the running version as
// the last version, then writes the settings to path.
func (r *Registry) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g := r.currentLocked(); g != nil {
		r.store.StoreLastGame(g.FolderName())
	}
	r.store.UpdateLastVersion(version.Version)
	return r.store.Save(path)
}

// InitErrors returns the problems recorded during Init.
func (r *Registry) InitErrors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.initErrors...)
}

// UpdatedSinceLastRun reports whether Init found the settings were last
// saved by an older version.
func (r *Registry) UpdatedSinceLastRun() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updated
}

func (r *Registry) indexOf(folder string) int {
	if folder == "" {
		return -1
	}
	for i, g := range r.games {
		if strings.EqualFold(g.FolderName(), folder) {
			return i
		}
	}
	return -1
}

func (r *Registry) currentLocked() *game.Game {
	if i := r.indexOf(r.current); i >= 0 {
		return r.games[i]
	}
	return nil
}

// applyLogging applies the logging section of the settings, then the debug
// toggle. The toggle wins unless it is off and the section names a level.
func (r *Registry) applyLogging() {
	cfg, err := logging.ConfigFromSettings(r.store.Snapshot())
	if err != nil {
		r.logger.WithError(err).Warn("Ignoring logging settings")
	}
	logging.Configure(cfg)

	debug := r.store.DebugLoggingEnabled()
	if logging.EnvLevelSet() || (!debug && cfg.Level != "") {
		return
	}
	logging.EnableDebugLogging(debug)
}
