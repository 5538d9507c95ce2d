package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/turnkey/internal/models"
)

func TestReconcile(t *testing.T) {
	events := []models.TurnEvent{
		turn("a", "2024-01-01", models.TrackTop, 0),
		turn("b", "2024-01-03", models.TrackBottom, 1),
		turn("c", "2024-01-03", models.TrackTop, 2),
		turn("d", "2024-01-03", models.TrackTop, 3),
		{ID: "x", Day: "2024-02-01", Arch: models.Track("middle")},
	}

	agg := Reconcile(events)
	if agg.Top.Done != 3 || agg.Bottom.Done != 1 {
		t.Errorf("done = %d/%d, want 3/1", agg.Top.Done, agg.Bottom.Done)
	}
	if agg.Top.LastDay != "2024-01-03" || agg.Top.LastEventID != "d" {
		t.Errorf("top last = %s/%s, want 2024-01-03/d", agg.Top.LastDay, agg.Top.LastEventID)
	}
	if agg.LastCombined != "2024-01-03" {
		t.Errorf("LastCombined = %s, want 2024-01-03", agg.LastCombined)
	}

	if empty := Reconcile(nil); empty.Top.LastDay != "" || empty.LastCombined != "" {
		t.Errorf("expected empty aggregates, got %+v", empty)
	}
}

func TestNewStateSortsNewestFirst(t *testing.T) {
	events := []models.TurnEvent{
		turn("a", "2024-01-01", models.TrackTop, 5),
		turn("b", "2024-01-03", models.TrackBottom, 1),
		turn("c", "2024-01-03", models.TrackTop, 2),
	}
	st := NewState(models.DefaultSettings(), events)

	want := []string{"c", "b", "a"}
	for i, id := range want {
		if st.Events[i].ID != id {
			t.Fatalf("Events[%d] = %s, want %s", i, st.Events[i].ID, id)
		}
	}
	if events[0].ID != "a" {
		t.Error("NewState must not reorder the caller's slice")
	}
}

func TestInsertThenUndoRoundTrip(t *testing.T) {
	base := NewState(intervalSettings(2), []models.TurnEvent{
		turn("a", "2024-01-01", models.TrackTop, 0),
		turn("b", "2024-01-02", models.TrackBottom, 1),
	})

	for _, arch := range models.Tracks {
		inserted := Append(base, models.TurnEvent{
			ID: "new", Day: "2024-01-05", Arch: arch, CreatedAt: time.Now(),
		})
		undone, removed, ok := UndoLast(inserted)
		if !ok || removed.ID != "new" {
			t.Fatalf("%s: UndoLast removed %+v (ok=%v)", arch, removed, ok)
		}
		if undone.Aggregates != base.Aggregates {
			t.Errorf("%s: aggregates after undo = %+v, want %+v", arch, undone.Aggregates, base.Aggregates)
		}
	}
}

func TestScenarioD_UndoAtMiddleRecomputes(t *testing.T) {
	st := NewState(intervalSettings(2), []models.TurnEvent{
		turn("t1", "2024-01-01", models.TrackTop, 0),
		turn("b1", "2024-01-01", models.TrackBottom, 1),
		turn("t2", "2024-01-03", models.TrackTop, 2),
		turn("b2", "2024-01-05", models.TrackBottom, 3),
		turn("t3", "2024-01-07", models.TrackTop, 4),
	})

	// history: t3, b2, t2, b1, t1 -> index 1 is b2
	next, removed, ok := UndoAt(st, 1)
	if !ok || removed.ID != "b2" {
		t.Fatalf("UndoAt(1) removed %+v (ok=%v)", removed, ok)
	}
	if next.Aggregates.Bottom.LastDay != "2024-01-01" || next.Aggregates.Bottom.Done != 1 {
		t.Errorf("bottom = %+v, want last 2024-01-01 done 1", next.Aggregates.Bottom)
	}
	if next.Aggregates.Top.LastDay != "2024-01-07" || next.Aggregates.Top.Done != 3 {
		t.Errorf("top = %+v, want last 2024-01-07 done 3", next.Aggregates.Top)
	}
	if len(st.Events) != 5 {
		t.Error("UndoAt must not mutate its input")
	}

	next, removed, ok = UndoAt(next, 0)
	if !ok || removed.ID != "t3" || next.Aggregates.Top.LastDay != "2024-01-03" {
		t.Errorf("after removing t3 top = %+v", next.Aggregates.Top)
	}
}

func TestUndoMissing(t *testing.T) {
	st := NewState(intervalSettings(2), []models.TurnEvent{turn("a", "2024-01-01", models.TrackTop, 0)})

	if _, _, ok := UndoAt(st, 3); ok {
		t.Error("expected out of range index to report not found")
	}
	if _, _, ok := UndoAt(st, -1); ok {
		t.Error("expected negative index to report not found")
	}
	if _, _, ok := UndoByID(st, "missing"); ok {
		t.Error("expected unknown id to report not found")
	}
	if _, _, ok := UndoLast(NewState(intervalSettings(2), nil)); ok {
		t.Error("expected nothing to undo on an empty log")
	}
}

func TestEditDayResortsAndReconciles(t *testing.T) {
	st := NewState(intervalSettings(2), []models.TurnEvent{
		turn("a", "2024-01-01", models.TrackTop, 0),
		turn("b", "2024-01-03", models.TrackTop, 1),
	})

	next, edited, ok := EditDay(st, "b", "2023-12-30")
	if !ok || edited.Day != "2023-12-30" {
		t.Fatalf("EditDay returned %+v (ok=%v)", edited, ok)
	}
	if next.Events[0].ID != "a" {
		t.Errorf("expected a to be newest after edit, got %s", next.Events[0].ID)
	}
	if next.Aggregates.Top.LastDay != "2024-01-01" {
		t.Errorf("LastDay = %s, want 2024-01-01", next.Aggregates.Top.LastDay)
	}
	if st.Aggregates.Top.LastDay != "2024-01-03" {
		t.Error("EditDay must not mutate its input")
	}

	if _, _, ok := EditDay(st, "missing", "2024-01-01"); ok {
		t.Error("expected unknown id to report not found")
	}
}
