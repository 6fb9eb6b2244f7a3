// Package game models a single installed game and how installations are found.
package game

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/util/pathutil"
)

// Game is the live session object for one installed game. Its folder name is
// its identity and never changes after construction.
type Game struct {
	gameType    config.GameType
	name        string
	folderName  string
	master      string
	repoURL     string
	repoBranch  string
	gamePath    string
	registryKey string

	dataPath    string
	initialized bool
}

// New builds a session from a settings record. Per-game data lives under
// dataDir/<folder>.
func New(settings config.GameSettings, dataDir string) *Game {
	g := &Game{
		gameType:   settings.Type,
		folderName: settings.FolderName,
		dataPath:   filepath.Join(dataDir, settings.FolderName),
	}
	return g.SetName(settings.Name).
		SetMaster(settings.Master).
		SetRepoURL(settings.RepoURL).
		SetRepoBranch(settings.RepoBranch).
		SetGamePath(settings.Path).
		SetRegistryKey(settings.RegistryKey)
}

func (g *Game) Type() config.GameType { return g.gameType }
func (g *Game) Name() string          { return g.name }
func (g *Game) FolderName() string    { return g.folderName }
func (g *Game) Master() string        { return g.master }
func (g *Game) RepoURL() string       { return g.repoURL }
func (g *Game) RepoBranch() string    { return g.repoBranch }
func (g *Game) GamePath() string      { return g.gamePath }
func (g *Game) RegistryKey() string   { return g.registryKey }
func (g *Game) DataPath() string      { return g.dataPath }

// Initialized reports whether the last Init call succeeded.
func (g *Game) Initialized() bool { return g.initialized }

func (g *Game) SetName(name string) *Game {
	if name == "" {
		name = g.folderName
	}
	g.name = name
	return g
}

func (g *Game) SetMaster(master string) *Game {
	g.master = master
	return g
}

func (g *Game) SetRepoURL(url string) *Game {
	g.repoURL = url
	return g
}

func (g *Game) SetRepoBranch(branch string) *Game {
	g.repoBranch = branch
	return g
}

// SetGamePath changes the install path. The session must be initialised
// again before it is used.
func (g *Game) SetGamePath(path string) *Game {
	if path != g.gamePath {
		g.initialized = false
	}
	g.gamePath = path
	return g
}

func (g *Game) SetRegistryKey(key string) *Game {
	g.registryKey = key
	return g
}

// Matches reports whether settings describes this game, comparing folder
// identities without regard to case.
func (g *Game) Matches(settings config.GameSettings) bool {
	return settings.Matches(g.folderName)
}

// Settings returns the record this session would persist.
func (g *Game) Settings() config.GameSettings {
	return config.GameSettings{
		Type:        g.gameType,
		Name:        g.name,
		FolderName:  g.folderName,
		Master:      g.master,
		RepoURL:     g.repoURL,
		RepoBranch:  g.repoBranch,
		Path:        g.gamePath,
		RegistryKey: g.registryKey,
	}
}

// Init prepares the session for use: the install path must hold the game's
// master file under Data/, and the per-game data directory is created.
// Init may be called repeatedly; each call re-checks the installation.
func (g *Game) Init() error {
	g.initialized = false

	if g.gamePath == "" {
		return errors.GameInitFailed(g.folderName, fmt.Errorf("no install path is set"))
	}
	if !HasInstallation(g.gamePath, g.master) {
		return errors.GameInitFailed(g.folderName, fmt.Errorf("no valid installation at %s", g.gamePath)).
			WithDetail("path", g.gamePath)
	}
	if err := os.MkdirAll(g.dataPath, 0755); err != nil {
		return errors.GameInitFailed(g.folderName, err).WithDetail("dataPath", g.dataPath)
	}

	g.initialized = true
	return nil
}

// HasInstallation reports whether path holds a game whose master file is
// Data/<master>. An empty master only requires the directory to exist.
func HasInstallation(path, master string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if master == "" {
		return true
	}
	_, ok := pathutil.FindFold(path, "Data", master)
	return ok
}
