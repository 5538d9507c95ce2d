package constants

const (
	AppName            = "turnkey"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/turnkey/turnkey.db"
	Version            = "v0.3.0"

	// DateFormat is the calendar-day format used for turn days and settings (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// WeeklyCap is the number of turns allowed per Monday-started week on the twice_per_week schedule
	WeeklyCap = 2

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "turnkey-"
	BackupFileSuffix = ".db"

	// Log file constants
	LogDirName  = "logs"
	LogFileName = "turnkey.log"

	// Environment variables
	EnvDBConnection  = "TURNKEY_DB_CONNECTION"
	EnvInstallOffset = "TURNKEY_INSTALL_OFFSET"

	// DefaultHistoryLimit is the number of history rows shown when no limit is given
	DefaultHistoryLimit = 20
)
