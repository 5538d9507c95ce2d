package models

import (
	"sort"
	"time"
)

// Turn sources
const (
	SourceApp    = "app"
	SourceLegacy = "legacy" // converted from the old snapshot log
)

// TurnEvent is a single logged expander turn.
type TurnEvent struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Arch      Track     `json:"arch"`
	Note      string    `json:"note,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"` // tie-breaker for same-day ordering only
}

// SourceOrDefault returns the stored source, treating empty as SourceApp.
func (e TurnEvent) SourceOrDefault() string {
	if e.Source == "" {
		return SourceApp
	}
	return e.Source
}

// NewerThan reports whether e sorts before other in newest-first history order.
func (e TurnEvent) NewerThan(other TurnEvent) bool {
	if e.Day != other.Day {
		return e.Day > other.Day
	}
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.After(other.CreatedAt)
	}
	return e.ID > other.ID
}

// SortHistory orders events newest first: day descending, then creation time descending.
func SortHistory(events []TurnEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].NewerThan(events[j])
	})
}
