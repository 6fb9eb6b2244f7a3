package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/gamestate/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSettings = `
game = "auto"
lastGame = "Skyrim"
language = "de"
enableDebugLogging = true
lastVersion = "0.1.0"

[[games]]
type = "Skyrim"
name = "TES V: Skyrim"
folder = "Skyrim"
master = "Skyrim.esm"
path = "${GAMESTATE_TEST_ROOT:-/games}/Skyrim"

[[games]]
type = "Fallout4"
folder = "Fallout4"
master = "Fallout4.esm"

[logging]
level = "debug"
report_caller = true
`

func TestLoadFromBytesTOML(t *testing.T) {
	t.Setenv("GAMESTATE_TEST_ROOT", "/mnt/steam")

	settings, err := LoadFromBytes([]byte(tomlSettings), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, AutoGame, settings.Game)
	assert.Equal(t, "Skyrim", settings.LastGame)
	assert.Equal(t, "de", settings.Language)
	assert.True(t, settings.EnableDebugLogging)
	assert.Equal(t, "0.1.0", settings.LastVersion)

	require.Len(t, settings.Games, 2)
	assert.Equal(t, GameTypeSkyrim, settings.Games[0].Type)
	assert.Equal(t, "/mnt/steam/Skyrim", settings.Games[0].Path)
	// Name defaults to the folder when omitted.
	assert.Equal(t, "Fallout4", settings.Games[1].Name)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, settings.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
}

func TestLoadFromBytesYAML(t *testing.T) {
	yamlContent := []byte(`
game: FalloutNV
games:
  - type: FalloutNV
    name: "Fallout: New Vegas"
    folder: FalloutNV
    master: FalloutNV.esm
    path: /games/FalloutNV
monitoring:
  enabled: true
  interval: 30
`)

	settings, err := LoadFromBytes(yamlContent, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "FalloutNV", settings.Game)
	assert.Equal(t, AutoGame, settings.LastGame)
	assert.Equal(t, DefaultLanguage, settings.Language)
	require.Len(t, settings.Games, 1)
	assert.Equal(t, "/games/FalloutNV", settings.Games[0].Path)

	var monCfg struct {
		Enabled  bool `yaml:"enabled"`
		Interval int  `yaml:"interval"`
	}
	require.NoError(t, settings.UnmarshalExtension("monitoring", &monCfg))
	assert.True(t, monCfg.Enabled)
	assert.Equal(t, 30, monCfg.Interval)

	var unknown struct {
		SomeField string `yaml:"some_field"`
	}
	require.NoError(t, settings.UnmarshalExtension("unknown", &unknown))
	assert.Empty(t, unknown.SomeField)
}

func TestLoadFromBytesEmptyUsesDefaults(t *testing.T) {
	settings, err := LoadFromBytes(nil, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, AutoGame, settings.Game)
	assert.Equal(t, AutoGame, settings.LastGame)
	assert.Equal(t, DefaultLanguage, settings.Language)
	assert.Len(t, settings.Games, len(DefaultGames()))
}

func TestLoadFromBytesErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		format  Format
		code    errors.ErrorCode
	}{
		{"malformed toml", "game = ", FormatTOML, errors.ErrCodeSettingsInvalid},
		{"malformed yaml", "games: [", FormatYAML, errors.ErrCodeSettingsInvalid},
		{"wrong type", `enableDebugLogging = "yes"`, FormatTOML, errors.ErrCodeSettingsInvalid},
		{"missing folder", "games:\n  - name: Nameless\n", FormatYAML, errors.ErrCodeSettingsInvalid},
		{"unknown game type", "games:\n  - folder: Morrowind\n    type: Morrowind\n", FormatYAML, errors.ErrCodeSettingsInvalid},
		{"duplicate folder", "games:\n  - folder: Skyrim\n  - folder: SKYRIM\n", FormatYAML, errors.ErrCodeSettingsValidation},
		{"folder with separator", "games:\n  - folder: Games/Skyrim\n", FormatYAML, errors.ErrCodeSettingsValidation},
		{"bad language", `language = "not a language tag"`, FormatTOML, errors.ErrCodeSettingsValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.content), tc.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.code), "expected %s, got %v", tc.code, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "settings.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSettingsNotFound))
}

func TestLoadAddsPathDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("game = "), 0644))

	_, err := Load(path)
	require.Error(t, err)
	gameErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, path, gameErr.Details["path"])
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			original, err := LoadFromBytes([]byte(tomlSettings), FormatTOML)
			require.NoError(t, err)
			original.Games[1].Path = `C:\Games\Fallout 4`

			require.NoError(t, Save(original, path))

			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, original.Game, loaded.Game)
			assert.Equal(t, original.LastGame, loaded.LastGame)
			assert.Equal(t, original.Language, loaded.Language)
			assert.Equal(t, original.EnableDebugLogging, loaded.EnableDebugLogging)
			assert.Equal(t, original.Games, loaded.Games)

			var logCfg struct {
				Level string `yaml:"level"`
			}
			require.NoError(t, loaded.UnmarshalExtension("logging", &logCfg))
			assert.Equal(t, "debug", logCfg.Level)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary files should not be left behind")
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFromPath("settings.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("settings.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("/a/b/SETTINGS.YAML"))
	assert.Equal(t, FormatTOML, FormatFromPath("settings"))
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"folder"`)
	assert.Contains(t, string(data), `"enableDebugLogging"`)
	assert.NotContains(t, string(data), `"Extensions"`)
}

func TestGameSettingsMatches(t *testing.T) {
	g := GameSettings{FolderName: "Skyrim"}
	assert.True(t, g.Matches("skyrim"))
	assert.True(t, g.Matches("SKYRIM"))
	assert.False(t, g.Matches("Skyrim Special Edition"))

	s := &Settings{Games: DefaultGames()}
	assert.Equal(t, 1, s.FindGame("skyrim"))
	assert.Equal(t, -1, s.FindGame("Morrowind"))
}

func TestDefaultGamesAreValid(t *testing.T) {
	s := &Settings{}
	s.SetDefaults()
	assert.NoError(t, s.Validate())
}
