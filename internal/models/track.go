package models

import (
	"strings"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
)

// Track is one of the two independently scheduled arches.
type Track string

const (
	TrackTop    Track = "top"
	TrackBottom Track = "bottom"
)

// Tracks lists every stored track in display order.
var Tracks = []Track{TrackTop, TrackBottom}

// Other returns the opposite arch.
func (t Track) Other() Track {
	if t == TrackTop {
		return TrackBottom
	}
	return TrackTop
}

func (t Track) Valid() bool {
	return t == TrackTop || t == TrackBottom
}

// ParseTrack parses a stored track name.
func ParseTrack(s string) (Track, error) {
	t := Track(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", apperrors.Invalid("track", "%q (expected top or bottom)", s)
	}
	return t, nil
}

// Selector scopes a request to one track or to both. It is never stored.
type Selector string

const (
	SelectTop    Selector = "top"
	SelectBottom Selector = "bottom"
	SelectBoth   Selector = "both"
)

// ParseSelector parses a request selector.
func ParseSelector(s string) (Selector, error) {
	sel := Selector(strings.ToLower(strings.TrimSpace(s)))
	switch sel {
	case SelectTop, SelectBottom, SelectBoth:
		return sel, nil
	}
	return "", apperrors.Invalid("track", "%q (expected top, bottom or both)", s)
}

// SelectorFor returns the single-track selector for t.
func SelectorFor(t Track) Selector {
	return Selector(t)
}

// Tracks expands the selector to the tracks it covers.
func (s Selector) Tracks() []Track {
	switch s {
	case SelectTop:
		return []Track{TrackTop}
	case SelectBottom:
		return []Track{TrackBottom}
	case SelectBoth:
		return []Track{TrackTop, TrackBottom}
	default:
		return nil
	}
}

// Combined reports whether the selector spans both tracks.
func (s Selector) Combined() bool {
	return s == SelectBoth
}
