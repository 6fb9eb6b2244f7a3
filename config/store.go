package config

import (
	"sync"
)

// Store holds the live settings document and is safe for concurrent use.
// Every accessor returns copies, so callers can never mutate the stored
// document behind the store's back.
type Store struct {
	mu       sync.RWMutex
	settings *Settings
}

// NewStore returns a store holding default settings.
func NewStore() *Store {
	settings := &Settings{}
	settings.SetDefaults()
	return &Store{settings: settings}
}

// NewStoreFrom returns a store holding a copy of settings.
func NewStoreFrom(settings *Settings) *Store {
	s := &Store{}
	s.Replace(settings)
	return s
}

// Load replaces the stored document with the contents of path. On failure
// the current document is kept.
func (s *Store) Load(path string) error {
	settings, err := Load(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// Save writes the stored document to path.
func (s *Store) Save(path string) error {
	return Save(s.Snapshot(), path)
}

// Replace swaps in a copy of settings, with defaults applied.
func (s *Store) Replace(settings *Settings) {
	clone := settings.Clone()
	clone.SetDefaults()

	s.mu.Lock()
	s.settings = clone
	s.mu.Unlock()
}

// Snapshot returns a copy of the stored document.
func (s *Store) Snapshot() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Games returns a copy of the game records.
func (s *Store) Games() []GameSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]GameSettings(nil), s.settings.Games...)
}

// StoreGames replaces the game records.
func (s *Store) StoreGames(games []GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Games = append([]GameSettings(nil), games...)
}

// Game returns the preferred game folder, or AutoGame.
func (s *Store) Game() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Game
}

// LastGame returns the folder of the previously used game, or AutoGame.
func (s *Store) LastGame() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.LastGame
}

// StoreLastGame records folder as the last used game.
func (s *Store) StoreLastGame(folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.LastGame = folder
}

func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Language
}

func (s *Store) DebugLoggingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.EnableDebugLogging
}

func (s *Store) LastVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.LastVersion
}

// UpdateLastVersion stamps version as the last version to save the settings.
func (s *Store) UpdateLastVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.LastVersion = version
}

// UnmarshalExtension decodes an extension section of the stored document.
func (s *Store) UnmarshalExtension(key string, target interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.UnmarshalExtension(key, target)
}
