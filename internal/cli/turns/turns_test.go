package turns

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/turnkey/internal/cli"
	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
	"github.com/julianstephens/turnkey/internal/tracker"
	"github.com/julianstephens/turnkey/internal/utils"
)

func setupTestDB(t *testing.T, today string) *cli.Context {
	t.Helper()
	logger.Discard()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sched := scheduler.New(0)
	svc := tracker.New(store, sched, utils.FixedClock(today))
	if err := svc.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	return &cli.Context{Store: store, Scheduler: sched, Tracker: svc}
}

func storedTurns(t *testing.T, ctx *cli.Context) []models.TurnEvent {
	t.Helper()
	turns, err := ctx.Store.ListTurns()
	if err != nil {
		t.Fatalf("failed to list turns: %v", err)
	}
	return turns
}

func TestLogCmd(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")

	if err := (&LogCmd{Note: "first"}).Run(ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if n := len(storedTurns(t, ctx)); n != 2 {
		t.Fatalf("expected both arches logged, got %d turns", n)
	}

	// inside the interval: a normal rejection, not an error
	if err := (&LogCmd{Track: "top"}).Run(ctx); err != nil {
		t.Errorf("guard rejection returned error: %v", err)
	}
	if n := len(storedTurns(t, ctx)); n != 2 {
		t.Errorf("rejected log wrote a turn, have %d", n)
	}

	if err := (&LogCmd{Track: "sideways"}).Run(ctx); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for bad track, got %v", err)
	}
	if err := (&LogCmd{Track: "top", Date: "2024-03-11"}).Run(ctx); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for a future date, got %v", err)
	}
}

func TestLogCmd_Backfill(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")

	if err := (&LogCmd{Track: "bottom", Date: "2024-03-01"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	turns := storedTurns(t, ctx)
	if len(turns) != 1 || turns[0].Day != "2024-03-01" || turns[0].Arch != models.TrackBottom {
		t.Errorf("turns = %+v", turns)
	}
}

func TestUndoCmd(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")

	for _, day := range []string{"2024-03-01", "2024-03-04", "2024-03-07"} {
		if _, err := ctx.Tracker.LogTurn(models.SelectTop, day, ""); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&UndoCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := ctx.Tracker.State().Aggregates.Top.LastDay; got != "2024-03-04" {
		t.Errorf("after undo LastDay = %s", got)
	}

	idx := 1
	if err := (&UndoCmd{Index: &idx}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	remaining := storedTurns(t, ctx)
	if len(remaining) != 1 || remaining[0].Day != "2024-03-04" {
		t.Fatalf("remaining = %+v", remaining)
	}

	if err := (&UndoCmd{ID: remaining[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(storedTurns(t, ctx)); n != 0 {
		t.Errorf("expected empty log, got %d", n)
	}

	// nothing left: reported, not an error
	if err := (&UndoCmd{}).Run(ctx); err != nil {
		t.Errorf("undo on empty log failed: %v", err)
	}
	if err := (&UndoCmd{ID: "x", Index: &idx}).Run(ctx); err == nil {
		t.Error("expected error when both --id and --index are given")
	}
}

func TestEditCmd(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")

	res, err := ctx.Tracker.LogTurn(models.SelectTop, "2024-03-05", "")
	if err != nil {
		t.Fatal(err)
	}
	id := res.Logged[0].ID

	note := "moved back"
	if err := (&EditCmd{ID: id, Date: "2024-03-04", Note: &note}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	turns := storedTurns(t, ctx)
	if turns[0].Day != "2024-03-04" || turns[0].Note != "moved back" {
		t.Errorf("stored turn = %+v", turns[0])
	}

	empty := ""
	if err := (&EditCmd{ID: id, Note: &empty}).Run(ctx); err != nil {
		t.Fatalf("note-only edit failed: %v", err)
	}
	turns = storedTurns(t, ctx)
	if turns[0].Day != "2024-03-04" || turns[0].Note != "" {
		t.Errorf("stored turn = %+v", turns[0])
	}

	if err := (&EditCmd{ID: "missing", Date: "2024-03-01"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := (&EditCmd{ID: id}).Run(ctx); err != nil {
		t.Errorf("edit without changes failed: %v", err)
	}
}

func TestHistoryCmd(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")

	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Errorf("history on empty log failed: %v", err)
	}

	for _, day := range []string{"2024-03-01", "2024-03-04"} {
		if _, err := ctx.Tracker.LogTurn(models.SelectBoth, day, "note"); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&HistoryCmd{Limit: 3, IDs: true}).Run(ctx); err != nil {
		t.Errorf("history failed: %v", err)
	}
	if err := (&HistoryCmd{Track: "bottom"}).Run(ctx); err != nil {
		t.Errorf("history for one arch failed: %v", err)
	}
	if err := (&HistoryCmd{Track: "both"}).Run(ctx); err == nil {
		t.Error("history accepts a single arch only")
	}
}

func TestFilterTrack(t *testing.T) {
	events := []models.TurnEvent{
		{ID: "1", Arch: models.TrackTop},
		{ID: "2", Arch: models.TrackBottom},
		{ID: "3", Arch: models.TrackTop},
	}
	got := filterTrack(events, models.TrackTop)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("filterTrack = %+v", got)
	}
}

func TestHistoryTable(t *testing.T) {
	events := []models.TurnEvent{{ID: "abc", Day: "2024-03-01", Arch: models.TrackTop, Note: "hi"}}

	withIDs := historyTable(events, true).String()
	if !strings.Contains(withIDs, "abc") || !strings.Contains(withIDs, "app") {
		t.Errorf("table missing id or default source:\n%s", withIDs)
	}
	if strings.Contains(historyTable(events, false).String(), "abc") {
		t.Error("ids shown without --ids")
	}
}

func TestStatusCmd(t *testing.T) {
	ctx := setupTestDB(t, "2024-03-10")
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
}
