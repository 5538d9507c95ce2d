package tracker

import (
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
)

var errDiskFull = errors.New("disk full")

// fakeStore is an in-memory storage.Provider whose writes can be made to fail.
type fakeStore struct {
	settings models.Settings
	turns    []models.TurnEvent

	failInsert   bool
	failDelete   bool
	failUpdate   bool
	failSettings bool
	failClear    bool
}

func newFakeStore(settings models.Settings, turns ...models.TurnEvent) *fakeStore {
	return &fakeStore{settings: settings, turns: append([]models.TurnEvent{}, turns...)}
}

func (f *fakeStore) Init() error           { return nil }
func (f *fakeStore) Load() error           { return nil }
func (f *fakeStore) Close() error          { return nil }
func (f *fakeStore) GetConfigPath() string { return "memory" }

func (f *fakeStore) GetSettings() (models.Settings, error) { return f.settings, nil }

func (f *fakeStore) SaveSettings(s models.Settings) error {
	if f.failSettings {
		return errDiskFull
	}
	f.settings = s
	return nil
}

func (f *fakeStore) ListTurns() ([]models.TurnEvent, error) {
	return append([]models.TurnEvent{}, f.turns...), nil
}

func (f *fakeStore) InsertTurns(turns []models.TurnEvent) error {
	if f.failInsert {
		return errDiskFull
	}
	f.turns = append(f.turns, turns...)
	return nil
}

func (f *fakeStore) DeleteTurn(id string) error {
	if f.failDelete {
		return errDiskFull
	}
	for i, e := range f.turns {
		if e.ID == id {
			f.turns = append(f.turns[:i], f.turns[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) UpdateTurn(turn models.TurnEvent) error {
	if f.failUpdate {
		return errDiskFull
	}
	for i, e := range f.turns {
		if e.ID == turn.ID {
			f.turns[i].Day = turn.Day
			f.turns[i].Note = turn.Note
			return nil
		}
	}
	return fmt.Errorf("turn %s: %w", turn.ID, apperrors.ErrNotFound)
}

func (f *fakeStore) ClearTurns() error {
	if f.failClear {
		return errDiskFull
	}
	f.turns = nil
	return nil
}
