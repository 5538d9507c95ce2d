package models

// LegacyEntry is one row of the old denormalized history log. Each row holds
// the counters as they stood after the action rather than the track it touched.
type LegacyEntry struct {
	Date            string `json:"date"`
	TopDoneAfter    int    `json:"topDoneAfter"`
	BottomDoneAfter int    `json:"bottomDoneAfter"`
	Note            string `json:"note,omitempty"`
	Timestamp       string `json:"timestamp,omitempty"`
}

// LegacySettings mirrors the settings block of the old export format.
type LegacySettings struct {
	TopTotal     int    `json:"topTotal"`
	BottomTotal  int    `json:"bottomTotal"`
	InstallDate  string `json:"installDate"`
	ScheduleType string `json:"scheduleType"`
	IntervalDays int    `json:"intervalDays"`
	ChildName    string `json:"childName"`
	LogTogether  *bool  `json:"logTogether"`
}

// LegacyExport is the whole state document written by the old tracker.
type LegacyExport struct {
	Settings *LegacySettings `json:"settings,omitempty"`
	History  []LegacyEntry   `json:"history"`
}
