package config

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	// AutoGame is the sentinel meaning "let the registry decide" for the
	// preferred and last-used game settings.
	AutoGame = "auto"

	// DefaultLanguage is the language used when the settings specify none.
	DefaultLanguage = "en"
)

// GameType identifies which engine family a game record belongs to.
type GameType string

const (
	GameTypeOblivion  GameType = "Oblivion"
	GameTypeSkyrim    GameType = "Skyrim"
	GameTypeSkyrimSE  GameType = "SkyrimSE"
	GameTypeFallout3  GameType = "Fallout3"
	GameTypeFalloutNV GameType = "FalloutNV"
	GameTypeFallout4  GameType = "Fallout4"
)

// GameSettings describes one supported game. The folder name is the stable,
// case-insensitive identity used everywhere a game is looked up.
type GameSettings struct {
	Type        GameType `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty" jsonschema:"description=Game type,enum=Oblivion,enum=Skyrim,enum=SkyrimSE,enum=Fallout3,enum=FalloutNV,enum=Fallout4"`
	Name        string   `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Display name of the game"`
	FolderName  string   `yaml:"folder" toml:"folder" json:"folder" jsonschema:"required,minLength=1,description=Folder identity of the game (case-insensitive key)"`
	Master      string   `yaml:"master,omitempty" toml:"master,omitempty" json:"master,omitempty" jsonschema:"description=Filename of the game's main master file"`
	RepoURL     string   `yaml:"repo,omitempty" toml:"repo,omitempty" json:"repo,omitempty" jsonschema:"description=URL of the masterlist repository"`
	RepoBranch  string   `yaml:"branch,omitempty" toml:"branch,omitempty" json:"branch,omitempty" jsonschema:"description=Masterlist repository branch"`
	Path        string   `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Local installation path (resolved automatically when empty)"`
	RegistryKey string   `yaml:"registry,omitempty" toml:"registry,omitempty" json:"registry,omitempty" jsonschema:"description=Windows registry key holding the install path"`
}

// Matches reports whether folder names the same game, ignoring case.
func (g GameSettings) Matches(folder string) bool {
	return strings.EqualFold(g.FolderName, folder)
}

// Settings is the persisted configuration document.
type Settings struct {
	Game               string         `yaml:"game,omitempty" toml:"game,omitempty" json:"game,omitempty" jsonschema:"description=Preferred game folder or 'auto'"`
	LastGame           string         `yaml:"lastGame,omitempty" toml:"lastGame,omitempty" json:"lastGame,omitempty" jsonschema:"description=Folder of the game used in the previous session or 'auto'"`
	Language           string         `yaml:"language,omitempty" toml:"language,omitempty" json:"language,omitempty" jsonschema:"description=BCP 47 language tag for messages"`
	EnableDebugLogging bool           `yaml:"enableDebugLogging" toml:"enableDebugLogging" json:"enableDebugLogging" jsonschema:"description=Log at trace level instead of warnings only"`
	LastVersion        string         `yaml:"lastVersion,omitempty" toml:"lastVersion,omitempty" json:"lastVersion,omitempty" jsonschema:"description=Application version that last saved these settings"`
	Games              []GameSettings `yaml:"games,omitempty" toml:"games,omitempty" json:"games,omitempty" jsonschema:"description=Supported games"`

	// Extensions holds top-level sections this package does not know about,
	// such as "logging". Decode them with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// SetDefaults fills unset preferences and the default game list.
func (s *Settings) SetDefaults() {
	if s.Game == "" {
		s.Game = AutoGame
	}
	if s.LastGame == "" {
		s.LastGame = AutoGame
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if len(s.Games) == 0 {
		s.Games = DefaultGames()
	}
	for i := range s.Games {
		if s.Games[i].Name == "" {
			s.Games[i].Name = s.Games[i].FolderName
		}
	}
}

// Clone returns a copy that shares no game slice with s.
func (s *Settings) Clone() *Settings {
	out := *s
	out.Games = append([]GameSettings(nil), s.Games...)
	if s.Extensions != nil {
		out.Extensions = make(map[string]interface{}, len(s.Extensions))
		for k, v := range s.Extensions {
			out.Extensions[k] = v
		}
	}
	return &out
}

// FindGame returns the index of the record matching folder, or -1.
func (s *Settings) FindGame(folder string) int {
	for i, g := range s.Games {
		if g.Matches(folder) {
			return i
		}
	}
	return -1
}

// UnmarshalExtension decodes an extension section of the settings file into
// target, which must be a pointer. A missing section leaves target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := settings.UnmarshalExtension("logging", &logCfg)
func (s *Settings) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := s.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
