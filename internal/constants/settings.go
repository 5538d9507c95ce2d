package constants

const (
	// Settings keys
	SettingTopTotal     = "top_total"
	SettingBottomTotal  = "bottom_total"
	SettingInstallDate  = "install_date"
	SettingScheduleType = "schedule_type"
	SettingIntervalDays = "interval_days"
	SettingChildName    = "child_name"
	SettingLogTogether  = "log_together"
	SettingTimezone     = "timezone"

	// Default Settings Values
	DefaultTopTotal     = 27
	DefaultBottomTotal  = 23
	DefaultInstallDate  = ""
	DefaultScheduleType = "every_n_days"
	DefaultIntervalDays = 2
	DefaultChildName    = "Child"
	DefaultLogTogether  = true
	DefaultTimezone     = "Local" // Use system local timezone by default
)
