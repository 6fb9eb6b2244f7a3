package game

import (
	"os"
	"path/filepath"

	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/util/pathutil"
	"github.com/sirupsen/logrus"
)

// LibraryPathEnv lists extra library directories to search, separated by the
// OS path list separator.
const LibraryPathEnv = "GAMESTATE_LIBRARY_PATHS"

// Detector decides which configured games are installed and builds sessions
// for them.
type Detector interface {
	IsInstalled(settings config.GameSettings) bool
	Construct(settings config.GameSettings, dataDir string) *Game
}

// installDirs maps a game type to the directory names its installs use inside
// a Steam library.
var installDirs = map[config.GameType][]string{
	config.GameTypeOblivion:  {"Oblivion"},
	config.GameTypeSkyrim:    {"Skyrim"},
	config.GameTypeSkyrimSE:  {"Skyrim Special Edition"},
	config.GameTypeFallout3:  {"Fallout 3", "Fallout 3 goty"},
	config.GameTypeFalloutNV: {"Fallout New Vegas"},
	config.GameTypeFallout4:  {"Fallout 4"},
}

// FileSystemDetector finds installations on disk. A configured path wins;
// otherwise every library root is searched for the game's usual directory
// names and its folder name.
type FileSystemDetector struct {
	roots  []string
	logger *logrus.Entry
}

// NewFileSystemDetector returns a detector probing the given library roots.
func NewFileSystemDetector(roots ...string) *FileSystemDetector {
	return &FileSystemDetector{
		roots:  roots,
		logger: logging.NewLogger("detector"),
	}
}

// DefaultLibraryRoots returns the directories named by GAMESTATE_LIBRARY_PATHS
// followed by the common Steam library locations under the home directory.
func DefaultLibraryRoots() []string {
	var roots []string
	if env := os.Getenv(LibraryPathEnv); env != "" {
		for _, p := range filepath.SplitList(env) {
			if expanded, err := pathutil.Expand(p); err == nil {
				roots = append(roots, expanded)
			}
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return roots
	}
	return append(roots,
		filepath.Join(home, ".local/share/Steam/steamapps/common"),
		filepath.Join(home, ".steam/steam/steamapps/common"),
		filepath.Join(home, ".steam/root/steamapps/common"),
		filepath.Join(home, ".var/app/com.valvesoftware.Steam/data/Steam/steamapps/common"),
	)
}

// Roots returns the library roots the detector searches.
func (d *FileSystemDetector) Roots() []string {
	return append([]string(nil), d.roots...)
}

// ResolvePath returns the install path for settings, if one can be found.
func (d *FileSystemDetector) ResolvePath(settings config.GameSettings) (string, bool) {
	if settings.Path != "" {
		path, err := pathutil.Expand(settings.Path)
		if err != nil {
			d.logger.WithError(err).Debugf("Could not expand path for %s", settings.FolderName)
			return "", false
		}
		if HasInstallation(path, settings.Master) {
			return path, true
		}
		d.logger.Tracef("Configured path for %s holds no installation: %s", settings.FolderName, path)
		return "", false
	}

	for _, candidate := range d.candidates(settings) {
		if HasInstallation(candidate, settings.Master) {
			d.logger.Tracef("Found %s at %s", settings.FolderName, candidate)
			return candidate, true
		}
	}
	return "", false
}

func (d *FileSystemDetector) candidates(settings config.GameSettings) []string {
	names := append([]string(nil), installDirs[settings.Type]...)
	names = append(names, settings.FolderName)

	var out []string
	seen := make(map[string]bool)
	for _, root := range d.roots {
		for _, name := range names {
			candidate := filepath.Join(root, name)
			if !seen[candidate] {
				seen[candidate] = true
				out = append(out, candidate)
			}
		}
	}
	return out
}

// IsInstalled reports whether an installation of settings can be found.
func (d *FileSystemDetector) IsInstalled(settings config.GameSettings) bool {
	_, ok := d.ResolvePath(settings)
	return ok
}

// Construct builds a session for settings, filling in the resolved install
// path.
func (d *FileSystemDetector) Construct(settings config.GameSettings, dataDir string) *Game {
	g := New(settings, dataDir)
	if path, ok := d.ResolvePath(settings); ok {
		g.SetGamePath(path)
	}
	return g
}
