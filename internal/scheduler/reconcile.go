package scheduler

import (
	"github.com/julianstephens/turnkey/internal/models"
)

// Reconcile derives the aggregates from events. Order of the input does not
// matter; events with an unknown arch are ignored.
func Reconcile(events []models.TurnEvent) Aggregates {
	var agg Aggregates
	newest := make(map[models.Track]models.TurnEvent, len(models.Tracks))

	for _, e := range events {
		ta := agg.ref(e.Arch)
		if ta == nil {
			continue
		}
		ta.Done++

		cur, seen := newest[e.Arch]
		if !seen || e.NewerThan(cur) {
			newest[e.Arch] = e
			ta.LastDay = e.Day
			ta.LastEventID = e.ID
		}
		if e.Day > agg.LastCombined {
			agg.LastCombined = e.Day
		}
	}

	return agg
}

// Append returns st with events added and re-derived.
func Append(st State, events ...models.TurnEvent) State {
	next := make([]models.TurnEvent, 0, len(st.Events)+len(events))
	next = append(next, st.Events...)
	next = append(next, events...)
	return NewState(st.Settings, next)
}

// UndoLast removes the newest event.
func UndoLast(st State) (State, models.TurnEvent, bool) {
	return UndoAt(st, 0)
}

// UndoAt removes the event at index in newest-first history order.
func UndoAt(st State, index int) (State, models.TurnEvent, bool) {
	if index < 0 || index >= len(st.Events) {
		return st, models.TurnEvent{}, false
	}
	removed := st.Events[index]
	next := make([]models.TurnEvent, 0, len(st.Events)-1)
	next = append(next, st.Events[:index]...)
	next = append(next, st.Events[index+1:]...)
	return NewState(st.Settings, next), removed, true
}

// UndoByID removes the event with id.
func UndoByID(st State, id string) (State, models.TurnEvent, bool) {
	_, idx, ok := st.Find(id)
	if !ok {
		return st, models.TurnEvent{}, false
	}
	return UndoAt(st, idx)
}

// EditDay moves the event with id to day, re-sorts, and re-derives. The
// returned event carries the new day.
func EditDay(st State, id, day string) (State, models.TurnEvent, bool) {
	_, idx, ok := st.Find(id)
	if !ok {
		return st, models.TurnEvent{}, false
	}
	next := st.History()
	next[idx].Day = day
	return NewState(st.Settings, next), next[idx], true
}
