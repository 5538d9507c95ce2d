// Package scheduler decides when an expander turn may be logged. Every
// function here is pure: it reads a State snapshot and returns values or a
// new State, never touching storage or the wall clock.
package scheduler

import (
	"github.com/julianstephens/turnkey/internal/models"
)

type Scheduler struct {
	// offset counts the install-day turn performed by the orthodontist
	// without a stored event. Either 0 or 1.
	offset int
}

// New returns a Scheduler that adds installOffset to every stored done count.
func New(installOffset int) *Scheduler {
	return &Scheduler{offset: installOffset}
}

// Offset returns the install-turn offset.
func (s *Scheduler) Offset() int {
	return s.offset
}

// DoneCount returns the turns counted toward t's total, install turn included.
func (s *Scheduler) DoneCount(t models.Track, st State) int {
	return st.Aggregates.For(t).Done + s.offset
}

// Remaining returns how many turns t still needs. Never negative.
func (s *Scheduler) Remaining(t models.Track, st State) int {
	left := st.Settings.Total(t) - s.DoneCount(t, st)
	if left < 0 {
		return 0
	}
	return left
}

// IsComplete reports whether t has reached its total.
func (s *Scheduler) IsComplete(t models.Track, st State) bool {
	return s.DoneCount(t, st) >= st.Settings.Total(t)
}

// bothComplete reports whether neither track accepts further turns.
func (s *Scheduler) bothComplete(st State) bool {
	return s.IsComplete(models.TrackTop, st) && s.IsComplete(models.TrackBottom, st)
}

// fold applies per to each track the selector covers and merges the results
// left to right. A single-track selector returns per(track) unchanged.
func fold[T any](sel models.Selector, per func(models.Track) T, merge func(T, T) T) T {
	tracks := sel.Tracks()
	if len(tracks) == 0 {
		var zero T
		return zero
	}
	acc := per(tracks[0])
	for _, t := range tracks[1:] {
		acc = merge(acc, per(t))
	}
	return acc
}
