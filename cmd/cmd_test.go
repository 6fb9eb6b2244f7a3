package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/gamestate/config"
	"github.com/grovetools/gamestate/errors"
	"github.com/grovetools/gamestate/game"
	"github.com/grovetools/gamestate/locale"
	"github.com/grovetools/gamestate/logging"
	"github.com/grovetools/gamestate/pkg/paths"
	"github.com/grovetools/gamestate/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeGameSettings = `
[[games]]
type = "Skyrim"
folder = "Skyrim"
name = "TES V: Skyrim"
master = "Skyrim.esm"

[[games]]
type = "Fallout4"
folder = "Fallout4"
name = "Fallout 4"
master = "Fallout4.esm"

[[games]]
type = "Oblivion"
folder = "Oblivion"
name = "TES IV: Oblivion"
master = "Oblivion.esm"
`

// syncBuffer is a bytes.Buffer safe for the watcher callback goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type cliEnv struct {
	dir      string
	library  string
	settings string
}

// newCLIEnv creates a data directory and a Steam library holding Skyrim and
// Fallout 4. Oblivion is configured but not installed.
func newCLIEnv(t *testing.T, settings string) *cliEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(paths.HomeEnv, home)
	t.Setenv("GAMESTATE_LOG_LEVEL", "")
	t.Cleanup(func() {
		logging.CloseLogFile()
		logging.Configure(logging.Config{})
		locale.SetLocale(locale.DefaultLanguage)
	})

	env := &cliEnv{
		dir:     t.TempDir(),
		library: t.TempDir(),
	}
	t.Setenv(game.LibraryPathEnv, env.library)

	testutil.CreateInstall(t, env.library, "Skyrim", "Skyrim.esm")
	testutil.CreateInstall(t, env.library, "Fallout 4", "Fallout4.esm")
	env.settings = testutil.WriteSettings(t, env.dir, "settings.toml", settings)
	return env
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--data-dir", e.dir))
	err := root.Execute()
	return out.String(), err
}

func TestGamesListsInstalledGames(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "games", "--json")
	require.NoError(t, err)

	var entries []GameEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "Skyrim", entries[0].Folder)
	assert.True(t, entries[0].Current)
	assert.True(t, entries[0].Installed)
	assert.Equal(t, filepath.Join(env.library, "Skyrim"), entries[0].Path)

	assert.Equal(t, "Fallout4", entries[1].Folder)
	assert.False(t, entries[1].Current)
	assert.Equal(t, filepath.Join(env.library, "Fallout 4"), entries[1].Path)
}

func TestGamesAllAndMatch(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	tests := []struct {
		name    string
		args    []string
		folders []string
	}{
		{"all configured", []string{"--all"}, []string{"Skyrim", "Fallout4", "Oblivion"}},
		{"match ignores case", []string{"--match", "SKY*"}, []string{"Skyrim"}},
		{"exclusion", []string{"--all", "--match", "*", "--match", "!fallout4"}, []string{"Skyrim", "Oblivion"}},
		{"no match", []string{"--match", "morrowind"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(t, append([]string{"games", "--json"}, tt.args...)...)
			require.NoError(t, err)

			var entries []GameEntry
			require.NoError(t, json.Unmarshal([]byte(out), &entries))
			var folders []string
			for _, e := range entries {
				folders = append(folders, e.Folder)
			}
			assert.Equal(t, tt.folders, folders)
		})
	}
}

func TestGamesMarksUninstalled(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "games", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "TES IV: Oblivion (Oblivion)")
	assert.Contains(t, out, "not installed")
}

func TestCurrentHonoursGameFlag(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "current", "--json", "--game", "fallout4")
	require.NoError(t, err)

	var current CurrentOutput
	require.NoError(t, json.Unmarshal([]byte(out), &current))
	assert.Equal(t, "Fallout4", current.Folder)
	assert.Equal(t, "Fallout4.esm", current.Master)
	assert.Equal(t, filepath.Join(env.dir, "Fallout4"), current.DataPath)
	assert.True(t, current.Initialized)
	assert.DirExists(t, current.DataPath)
}

func TestSelectPersistsLastGame(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "select", "FALLOUT4")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected Fallout 4")

	saved, err := config.Load(env.settings)
	require.NoError(t, err)
	assert.Equal(t, "Fallout4", saved.LastGame)
	assert.NotEmpty(t, saved.LastVersion)

	out, err = env.run(t, "current", "--json")
	require.NoError(t, err)
	var current CurrentOutput
	require.NoError(t, json.Unmarshal([]byte(out), &current))
	assert.Equal(t, "Fallout4", current.Folder)
}

func TestSelectUnknownGame(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)
	before, err := os.ReadFile(env.settings)
	require.NoError(t, err)

	_, err = env.run(t, "select", "Oblivion")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeGameNotFound))

	after, err := os.ReadFile(env.settings)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "a failed select must not save")
}

func TestSettingsPrintsResolvedPaths(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "settings", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "folder: Skyrim")
	assert.Contains(t, out, filepath.Join(env.library, "Fallout 4"))

	out, err = env.run(t, "settings", "--json")
	require.NoError(t, err)
	var settings config.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	assert.Len(t, settings.Games, 3)

	_, err = env.run(t, "settings", "--format", "ini")
	assert.Error(t, err)
}

func TestErrorsReportsMissingGames(t *testing.T) {
	env := newCLIEnv(t, `
[[games]]
folder = "Oblivion"
master = "Oblivion.esm"
`)

	out, err := env.run(t, "errors", "--json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeGameNotDetected))

	var msgs []string
	require.NoError(t, json.Unmarshal([]byte(out), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Error: Game-specific settings could not be initialised. None of the supported games were detected.", msgs[0])
}

func TestErrorsNoProblems(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "errors", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSchemaCommand(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, out, "games")
}

func TestPathsCommand(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "paths", "--json")
	require.NoError(t, err)

	var output PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, env.dir, output.DataDir)
	assert.Equal(t, env.settings, output.SettingsFile)
	assert.Equal(t, filepath.Join(env.dir, paths.LogFileName), output.LogFile)
	assert.Contains(t, output.LibraryRoots, env.library)
}

func TestLogsTail(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	_, err := env.run(t, "logs")
	require.Error(t, err, "no log has been written yet")

	testutil.WriteSettings(t, env.dir, paths.LogFileName, "first\nsecond\nthird\n")

	out, err := env.run(t, "logs", "--tail", "2")
	require.NoError(t, err)
	assert.Equal(t, "second\nthird\n", out)

	out, err = env.run(t, "logs")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird\n", out)
}

func TestFollowLog(t *testing.T) {
	path := testutil.WriteSettings(t, t.TempDir(), "session.log", "old\n")

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- followLog(ctx, &out, path) }()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer f.Close()

	// The follower starts at the end of the file, so keep appending until it
	// has caught up.
	ok := testutil.Eventually(t, 5*time.Second, func() bool {
		_, _ = f.WriteString("tick\n")
		return strings.Contains(out.String(), "tick")
	})
	require.True(t, ok, "appended lines were not followed")
	assert.NotContains(t, out.String(), "old")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("followLog did not stop")
	}
}

func TestWatchReloadsSettings(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)
	pidPath := filepath.Join(env.dir, "watch.pid")

	root := NewRootCmd()
	var out syncBuffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"watch", "--debounce", "50ms", "--pid-file", pidPath, "--data-dir", env.dir})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.True(t, testutil.Eventually(t, 5*time.Second, func() bool {
		return strings.Contains(out.String(), "Watching")
	}), "watcher did not start")
	assert.FileExists(t, pidPath)

	// Drop Skyrim, the current game.
	testutil.WriteSettings(t, env.dir, "settings.toml", `
[[games]]
type = "Fallout4"
folder = "Fallout4"
name = "Fallout 4"
master = "Fallout4.esm"
`)

	require.True(t, testutil.Eventually(t, 5*time.Second, func() bool {
		return strings.Contains(out.String(), "Reloaded")
	}), "settings were not reloaded: %s", out.String())
	assert.Contains(t, out.String(), "Fallout 4")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.NoFileExists(t, pidPath)
}

func TestWatchRefusesSecondInstance(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)
	pidPath := testutil.WriteSettings(t, env.dir, "watch.pid", "1")

	_, err := env.run(t, "watch", "--pid-file", pidPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeAlreadyRunning))
}

func TestVersionJSON(t *testing.T) {
	env := newCLIEnv(t, threeGameSettings)

	out, err := env.run(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["platform"])
}
