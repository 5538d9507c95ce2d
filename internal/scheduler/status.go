package scheduler

import (
	"github.com/julianstephens/turnkey/internal/models"
)

// Status is the three-state summary shown for a track.
type Status string

const (
	StatusReady    Status = "ready"
	StatusWait     Status = "wait"
	StatusComplete Status = "complete"
)

// Status classifies sel. The combined status is availability oriented: ready
// when either track is ready, complete only when both are.
func (s *Scheduler) Status(sel models.Selector, st State, today string) Status {
	return fold(sel, func(t models.Track) Status {
		return StatusOf(s.trackEligibility(t, st, today))
	}, mergeStatus)
}

// StatusOf classifies a single eligibility result.
func StatusOf(e Eligibility) Status {
	switch {
	case e.Reason == ReasonComplete:
		return StatusComplete
	case !e.CanLog:
		return StatusWait
	}
	return StatusReady
}

func mergeStatus(a, b Status) Status {
	switch {
	case a == StatusComplete && b == StatusComplete:
		return StatusComplete
	case a == StatusReady || b == StatusReady:
		return StatusReady
	}
	return StatusWait
}
