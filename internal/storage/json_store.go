package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/turnkey/internal/constants"
	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
)

// Store is the on-disk document of a JSONStore.
type Store struct {
	Version  int                `json:"version"`
	Settings models.Settings    `json:"settings"`
	Turns    []models.TurnEvent `json:"turns"`
}

// JSONStore keeps the whole tracker in one JSON file. Every write rewrites
// the file through a temp file and rename, so a write is all or nothing.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
		Turns:    []models.TurnEvent{},
	}

	return s.save(s.store)
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	models.ApplyDefaultSettings(&store.Settings)
	if store.Turns == nil {
		store.Turns = []models.TurnEvent{}
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes next to disk and adopts it only once the rename succeeded.
func (s *JSONStore) save(next *Store) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	s.store = next
	return nil
}

// draft returns a copy of the current document for a pending write.
func (s *JSONStore) draft() (*Store, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	next := *s.store
	next.Turns = make([]models.TurnEvent, len(s.store.Turns))
	copy(next.Turns, s.store.Turns)
	return &next, nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	next, err := s.draft()
	if err != nil {
		return err
	}
	next.Settings = settings
	return s.save(next)
}

func (s *JSONStore) ListTurns() ([]models.TurnEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.TurnEvent, len(s.store.Turns))
	copy(out, s.store.Turns)
	return out, nil
}

func (s *JSONStore) InsertTurns(turns []models.TurnEvent) error {
	next, err := s.draft()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(next.Turns))
	for _, e := range next.Turns {
		seen[e.ID] = true
	}
	for _, e := range turns {
		if seen[e.ID] {
			return fmt.Errorf("turn %s already exists", e.ID)
		}
		seen[e.ID] = true
		if e.Source == "" {
			e.Source = models.SourceApp
		}
		next.Turns = append(next.Turns, e)
	}
	return s.save(next)
}

func (s *JSONStore) DeleteTurn(id string) error {
	next, err := s.draft()
	if err != nil {
		return err
	}

	kept := next.Turns[:0]
	for _, e := range next.Turns {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(next.Turns) {
		return nil
	}
	next.Turns = kept
	return s.save(next)
}

func (s *JSONStore) UpdateTurn(turn models.TurnEvent) error {
	next, err := s.draft()
	if err != nil {
		return err
	}

	for i, e := range next.Turns {
		if e.ID == turn.ID {
			next.Turns[i].Day = turn.Day
			next.Turns[i].Note = turn.Note
			return s.save(next)
		}
	}
	return fmt.Errorf("turn %s: %w", turn.ID, apperrors.ErrNotFound)
}

func (s *JSONStore) ClearTurns() error {
	next, err := s.draft()
	if err != nil {
		return err
	}
	next.Turns = []models.TurnEvent{}
	return s.save(next)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
