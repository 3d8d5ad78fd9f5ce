package constants

import "time"

const (
	AppName            = "tally"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tally/tally.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Document keys. Each key holds one whole JSON document.
	KeyEngagement = "tally:engagement"
	KeyGoals      = "tally:goals"
	KeySkills     = "tally:skills"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "tally-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tally"
	TrayAppExecutable      = "tally-tray"

	// Reminder defaults
	DefaultReminderTime = "20:00"
	DefaultTimezone     = "Local"

	// Journal limits
	MinMood = 1
	MaxMood = 5

	// Goal progress bounds
	MinProgress = 0
	MaxProgress = 100
)

// StorageTimeout bounds a single round trip to a networked backend.
const StorageTimeout = 5 * time.Second

// DocumentKeys lists every namespaced key owned by the application.
var DocumentKeys = []string{KeyEngagement, KeyGoals, KeySkills}
