package scheduler

import (
	"github.com/julianstephens/turnkey/internal/models"
)

// ApplyLogTogether turns log-together mode off once exactly one track is
// complete and the other still has turns left. The transition is one way:
// nothing here ever turns the mode back on. Callers run it after every insert.
func (s *Scheduler) ApplyLogTogether(st State) (State, bool) {
	if !st.Settings.LogTogether {
		return st, false
	}
	top := s.IsComplete(models.TrackTop, st)
	bottom := s.IsComplete(models.TrackBottom, st)
	if top == bottom {
		return st, false
	}

	settings := st.Settings
	settings.LogTogether = false
	return st.WithSettings(settings), true
}
