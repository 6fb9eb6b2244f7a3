package state

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/game"
	"github.com/grovetools/gamestate/testutil"
)

// fakeDetector reports a fixed set of folders as installed and lays out an
// empty installation for each so sessions can be initialised.
type fakeDetector struct {
	t    *testing.T
	root string

	mu          sync.Mutex
	installed   map[string]bool
	constructed int
}

func newFakeDetector(t *testing.T, folders ...string) *fakeDetector {
	d := &fakeDetector{t: t, root: t.TempDir(), installed: make(map[string]bool)}
	for _, folder := range folders {
		d.install(folder)
	}
	return d
}

func (d *fakeDetector) install(folder string) {
	testutil.CreateInstall(d.t, d.root, folder, "")
	d.mu.Lock()
	d.installed[strings.ToLower(folder)] = true
	d.mu.Unlock()
}

func (d *fakeDetector) uninstall(folder string) {
	testutil.RemoveInstall(d.t, d.path(folder))
	d.mu.Lock()
	delete(d.installed, strings.ToLower(folder))
	d.mu.Unlock()
}

func (d *fakeDetector) path(folder string) string {
	return filepath.Join(d.root, folder)
}

func (d *fakeDetector) IsInstalled(settings config.GameSettings) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.installed[strings.ToLower(settings.FolderName)]
}

func (d *fakeDetector) Construct(settings config.GameSettings, dataDir string) *game.Game {
	d.mu.Lock()
	d.constructed++
	d.mu.Unlock()

	g := game.New(settings, dataDir)
	if settings.Path == "" {
		g.SetGamePath(d.path(settings.FolderName))
	}
	return g
}

func (d *fakeDetector) constructCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.constructed
}

// settingsFor builds a settings document listing the given folders.
func settingsFor(folders ...string) *config.Settings {
	s := &config.Settings{}
	for _, folder := range folders {
		s.Games = append(s.Games, config.GameSettings{
			Type:       config.GameTypeSkyrim,
			Name:       folder + " (name)",
			FolderName: folder,
		})
	}
	s.SetDefaults()
	return s
}

func newTestRegistry(t *testing.T, detector *fakeDetector) (*Registry, *config.Store) {
	store := config.NewStore()
	return NewRegistry(store, detector, t.TempDir()), store
}
