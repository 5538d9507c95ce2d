package scheduler

import (
	"github.com/julianstephens/turnkey/internal/models"
)

// TrackAggregate holds the counters derived for one track.
type TrackAggregate struct {
	Done        int
	LastDay     string // empty iff Done == 0
	LastEventID string // newest event by day, then creation time
}

// Aggregates is the derived view of a turn log. It is never authoritative;
// Reconcile rebuilds it from the events alone.
type Aggregates struct {
	Top          TrackAggregate
	Bottom       TrackAggregate
	LastCombined string // newest day across both tracks
}

// For returns the aggregate for t.
func (a Aggregates) For(t models.Track) TrackAggregate {
	if t == models.TrackTop {
		return a.Top
	}
	return a.Bottom
}

func (a *Aggregates) ref(t models.Track) *TrackAggregate {
	switch t {
	case models.TrackTop:
		return &a.Top
	case models.TrackBottom:
		return &a.Bottom
	}
	return nil
}

// State is an immutable snapshot of one user's tracker. Events are kept
// newest first and Aggregates always matches them.
type State struct {
	Settings   models.Settings
	Events     []models.TurnEvent
	Aggregates Aggregates
}

// NewState builds a reconciled snapshot. The events slice is copied.
func NewState(settings models.Settings, events []models.TurnEvent) State {
	evs := make([]models.TurnEvent, len(events))
	copy(evs, events)
	models.SortHistory(evs)
	return State{
		Settings:   settings,
		Events:     evs,
		Aggregates: Reconcile(evs),
	}
}

// WithSettings returns a copy of st carrying settings.
func (st State) WithSettings(settings models.Settings) State {
	return NewState(settings, st.Events)
}

// History returns a copy of the events, newest first.
func (st State) History() []models.TurnEvent {
	out := make([]models.TurnEvent, len(st.Events))
	copy(out, st.Events)
	return out
}

// Find returns the event with id and its history index.
func (st State) Find(id string) (models.TurnEvent, int, bool) {
	for i, e := range st.Events {
		if e.ID == id {
			return e, i, true
		}
	}
	return models.TurnEvent{}, -1, false
}
