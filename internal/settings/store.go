// Package settings persists the externally-owned settings document to a
// flat JSON file. The core reads people configuration from it; the HTTP
// surface merges partial updates into it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/antighoster/antighoster/internal/model"
)

// Settings is the full settings document. Unknown keys in the file are
// dropped on the next save; the three known keys always survive a load.
type Settings struct {
	SetupComplete  bool           `json:"setupComplete"`
	People         []model.Person `json:"people"`
	ExpandedGroups []string       `json:"expandedGroups"`
}

func defaults() Settings {
	return Settings{
		People:         []model.Person{},
		ExpandedGroups: []string{},
	}
}

// Store reads and writes the settings file. All access is serialized behind
// the mutex so concurrent merge requests cannot interleave their
// read-modify-write cycles.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the document at path. The file does not need
// to exist yet; loads fall back to defaults until the first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current settings, with file contents layered over
// defaults so keys missing from disk keep their default values.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Merge overlays the given top-level keys onto the current document, mints
// ids for any person entries arriving without one, and persists the result.
func (s *Store) Merge(patch map[string]json.RawMessage) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return Settings{}, err
	}

	buf, err := json.Marshal(cur)
	if err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return Settings{}, fmt.Errorf("reshape settings: %w", err)
	}
	for k, v := range patch {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return Settings{}, fmt.Errorf("encode merged settings: %w", err)
	}

	next := defaults()
	if err := json.Unmarshal(merged, &next); err != nil {
		return Settings{}, fmt.Errorf("decode merged settings: %w", err)
	}

	for i := range next.People {
		if next.People[i].ID == "" {
			next.People[i].ID = uuid.NewString()
		}
	}

	if err := s.saveLocked(next); err != nil {
		return Settings{}, err
	}
	return next, nil
}

func (s *Store) loadLocked() (Settings, error) {
	out := defaults()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return out, nil
}

// saveLocked writes via a temp file and rename so a crash mid-write never
// leaves a truncated document.
func (s *Store) saveLocked(st Settings) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
