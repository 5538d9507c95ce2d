// Package storagetest holds the behavior every storage.Provider must share.
// Backend packages run it from their own tests.
package storagetest

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/storage"
)

// Factory returns a fresh, initialized provider.
type Factory func(t *testing.T) storage.Provider

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func turn(id, day string, arch models.Track, minutes int) models.TurnEvent {
	return models.TurnEvent{
		ID:        id,
		Day:       day,
		Arch:      arch,
		CreatedAt: base.Add(time.Duration(minutes) * time.Minute),
	}
}

// Run exercises settings and turn persistence against providers from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("default settings", func(t *testing.T) {
		store := newStore(t)
		got, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got != models.DefaultSettings() {
			t.Errorf("expected defaults, got %+v", got)
		}
	})

	t.Run("save settings", func(t *testing.T) {
		store := newStore(t)
		want := models.DefaultSettings()
		want.TopTotal = 31
		want.InstallDate = "2024-02-01"
		want.ScheduleType = models.ScheduleTwicePerWeek
		want.LogTogether = false
		want.ChildName = "Robin"

		if err := store.SaveSettings(want); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got != want {
			t.Errorf("GetSettings = %+v, want %+v", got, want)
		}
	})

	t.Run("insert and list", func(t *testing.T) {
		store := newStore(t)
		in := []models.TurnEvent{
			turn("a", "2024-01-01", models.TrackTop, 0),
			turn("b", "2024-01-01", models.TrackBottom, 1),
			turn("c", "2024-01-03", models.TrackTop, 2),
		}
		in[2].Note = "after dinner"
		if err := store.InsertTurns(in); err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}

		got, err := store.ListTurns()
		if err != nil {
			t.Fatalf("ListTurns failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 turns, got %d", len(got))
		}
		byID := make(map[string]models.TurnEvent)
		for _, e := range got {
			byID[e.ID] = e
		}
		c := byID["c"]
		if c.Day != "2024-01-03" || c.Arch != models.TrackTop || c.Note != "after dinner" {
			t.Errorf("turn c round tripped as %+v", c)
		}
		if !c.CreatedAt.Equal(in[2].CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, in[2].CreatedAt)
		}
		if c.SourceOrDefault() != models.SourceApp {
			t.Errorf("Source = %q, want app", c.Source)
		}
	})

	t.Run("duplicate same-day turns are allowed", func(t *testing.T) {
		store := newStore(t)
		err := store.InsertTurns([]models.TurnEvent{
			turn("a", "2024-01-01", models.TrackTop, 0),
			turn("b", "2024-01-01", models.TrackTop, 1),
		})
		if err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}
	})

	t.Run("insert is atomic", func(t *testing.T) {
		store := newStore(t)
		if err := store.InsertTurns([]models.TurnEvent{turn("a", "2024-01-01", models.TrackTop, 0)}); err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}

		// the second row reuses an id, so the first must not land either
		err := store.InsertTurns([]models.TurnEvent{
			turn("b", "2024-01-02", models.TrackTop, 1),
			turn("a", "2024-01-02", models.TrackBottom, 2),
		})
		if err == nil {
			t.Fatal("expected duplicate id to fail")
		}

		got, err := store.ListTurns()
		if err != nil {
			t.Fatalf("ListTurns failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected the failed batch to leave 1 turn, got %d", len(got))
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		if err := store.InsertTurns([]models.TurnEvent{
			turn("a", "2024-01-01", models.TrackTop, 0),
			turn("b", "2024-01-02", models.TrackTop, 1),
		}); err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}

		if err := store.DeleteTurn("a"); err != nil {
			t.Fatalf("DeleteTurn failed: %v", err)
		}
		if err := store.DeleteTurn("missing"); err != nil {
			t.Errorf("deleting a missing turn should succeed, got %v", err)
		}

		got, _ := store.ListTurns()
		if len(got) != 1 || got[0].ID != "b" {
			t.Errorf("expected only b to remain, got %+v", got)
		}
	})

	t.Run("update", func(t *testing.T) {
		store := newStore(t)
		original := turn("a", "2024-01-01", models.TrackTop, 0)
		if err := store.InsertTurns([]models.TurnEvent{original}); err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}

		edited := original
		edited.Day = "2023-12-31"
		edited.Note = "moved"
		if err := store.UpdateTurn(edited); err != nil {
			t.Fatalf("UpdateTurn failed: %v", err)
		}
		got, _ := store.ListTurns()
		if len(got) != 1 || got[0].Day != "2023-12-31" || got[0].Note != "moved" {
			t.Errorf("UpdateTurn did not persist: %+v", got)
		}

		err := store.UpdateTurn(turn("missing", "2024-01-01", models.TrackTop, 0))
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		store := newStore(t)
		if err := store.InsertTurns([]models.TurnEvent{turn("a", "2024-01-01", models.TrackTop, 0)}); err != nil {
			t.Fatalf("InsertTurns failed: %v", err)
		}
		if err := store.ClearTurns(); err != nil {
			t.Fatalf("ClearTurns failed: %v", err)
		}
		got, err := store.ListTurns()
		if err != nil || len(got) != 0 {
			t.Errorf("expected no turns after clear, got %d (%v)", len(got), err)
		}
	})
}
