// Package prefs persists per-user language preferences as a JSON snapshot.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/turjubaan/turjubaan/languages"
	logger "github.com/turjubaan/turjubaan/log"
)

// Store is the single owner of the user -> language mapping. Every mutation
// goes through Set, which persists the full snapshot synchronously.
type Store struct {
	mu     sync.Mutex
	path   string
	langs  map[int64]string
	logger logger.Logger
}

// NewStore creates a store backed by the snapshot file at path.
func NewStore(path string, logger logger.Logger) *Store {
	return &Store{
		path:   path,
		langs:  make(map[int64]string),
		logger: logger,
	}
}

// Load reads the persisted snapshot. A missing file starts the store empty;
// malformed content is logged and also starts the store empty, since losing
// preferences is recoverable and failing startup is not.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Error loading user preferences", err)
		} else {
			s.logger.Info("No saved preferences found, starting with empty preferences")
		}
		s.langs = make(map[int64]string)
		return
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error("Error parsing user preferences, starting empty", err)
		s.langs = make(map[int64]string)
		return
	}

	langs := make(map[int64]string, len(raw))
	for key, lang := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			s.logger.Error(fmt.Sprintf("Skipping preference with non-numeric user id %q", key), err)
			continue
		}
		langs[id] = lang
	}
	s.langs = langs
	s.logger.Infof("Loaded preferences for %d users", len(s.langs))
}

// Get returns the user's language code, defaulting to English. Never fails.
func (s *Store) Get(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lang, ok := s.langs[userID]; ok {
		return lang
	}
	return languages.Default
}

// Set records the user's language and persists the full mapping. The caller
// is responsible for validating the code against the catalog. Persistence
// errors are logged, never propagated; the in-memory update always sticks.
func (s *Store) Set(userID int64, lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[userID] = lang
	s.persistLocked()
}

// Persist writes the current snapshot to disk.
func (s *Store) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

// persistLocked serializes the mapping with string keys and replaces the
// snapshot atomically, so a concurrent Load never observes a partial write.
func (s *Store) persistLocked() {
	raw := make(map[string]string, len(s.langs))
	for id, lang := range s.langs {
		raw[strconv.FormatInt(id, 10)] = lang
	}

	data, err := json.Marshal(raw)
	if err != nil {
		s.logger.Error("Error serializing user preferences", err)
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*")
	if err != nil {
		s.logger.Error("Error creating preferences temp file", err)
		return
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		s.logger.Error("Error writing user preferences", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Error closing preferences temp file", err)
		return
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Error replacing preferences snapshot", err)
		return
	}
}

// Len returns the number of stored preferences.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.langs)
}
