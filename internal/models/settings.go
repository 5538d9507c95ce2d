package models

// ScheduleType selects how turns are spaced
type ScheduleType string

const (
	ScheduleEveryNDays   ScheduleType = "every_n_days"
	ScheduleTwicePerWeek ScheduleType = "twice_per_week"
)

func (s ScheduleType) Valid() bool {
	return s == ScheduleEveryNDays || s == ScheduleTwicePerWeek
}

// Settings represents the per-user expander configuration
type Settings struct {
	TopTotal     int          `json:"top_total"`     // target turn count for the top arch
	BottomTotal  int          `json:"bottom_total"`  // target turn count for the bottom arch
	InstallDate  string       `json:"install_date"`  // YYYY-MM-DD, empty when unknown
	ScheduleType ScheduleType `json:"schedule_type"` // every_n_days or twice_per_week
	IntervalDays int          `json:"interval_days"` // minimum days between turns (every_n_days only)
	ChildName    string       `json:"child_name"`    // display label
	LogTogether  bool         `json:"log_together"`  // top and bottom are logged as one action
	Timezone     string       `json:"timezone"`      // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
}

// Total returns the target turn count for t.
func (s Settings) Total(t Track) int {
	if t == TrackTop {
		return s.TopTotal
	}
	return s.BottomTotal
}
