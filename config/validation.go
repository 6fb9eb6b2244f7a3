package config

import (
	"fmt"
	"strings"

	"github.com/grovetools/gamestate/errors"
	"golang.org/x/text/language"
)

// Validate checks semantic constraints the schema cannot express.
func (s *Settings) Validate() error {
	if s.Language != "" {
		if _, err := language.Parse(s.Language); err != nil {
			return errors.Wrap(err, errors.ErrCodeSettingsValidation, fmt.Sprintf("invalid language '%s'", s.Language)).
				WithDetail("language", s.Language)
		}
	}

	seen := make(map[string]int, len(s.Games))
	for i, game := range s.Games {
		if err := validateGame(game); err != nil {
			return errors.Wrap(err, errors.ErrCodeSettingsValidation, fmt.Sprintf("invalid game entry %d", i)).
				WithDetail("index", i)
		}

		key := strings.ToLower(game.FolderName)
		if first, dup := seen[key]; dup {
			return errors.New(errors.ErrCodeSettingsValidation,
				fmt.Sprintf("duplicate game folder '%s' (entries %d and %d)", game.FolderName, first, i)).
				WithDetail("folder", game.FolderName)
		}
		seen[key] = i
	}

	return nil
}

func validateGame(game GameSettings) error {
	if strings.TrimSpace(game.FolderName) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "game folder cannot be empty")
	}
	if strings.ContainsAny(game.FolderName, `/\`) {
		return errors.New(errors.ErrCodeInvalidInput, "game folder must be a single path element").
			WithDetail("folder", game.FolderName)
	}
	if game.Master != "" && strings.ContainsAny(game.Master, `/\`) {
		return errors.New(errors.ErrCodeInvalidInput, "master must be a filename, not a path").
			WithDetail("master", game.Master)
	}
	return nil
}
