package constants

import "time"

const (
	AppName            = "nudge"
	DefaultKeyringUser = "database-connection"
	TokenKeyringUser   = "api-token"
	DefaultConfigPath  = "~/.config/nudge/nudge.db"
	DefaultAPIURL      = "http://127.0.0.1:5000/api"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used for deadlines (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is used to select a month for statistics (YYYY-MM)
	MonthFormat = "2006-01"

	// Key-value store keys
	ResponseLogKey   = "taskStats"
	ReminderStateKey = "remindedToday"

	// Reminder loop constants
	DefaultPollInterval    = 10 * time.Second
	DefaultRefreshInterval = 60 * time.Second
	RequestTimeout         = 15 * time.Second

	// Notify constants
	NotifierLockfileName   = "nudge-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.nudge"
	TrayExecutablePrefix   = "nudge-tray"

	// Server constants
	DefaultServerAddr = "127.0.0.1:5000"
	DefaultCategory   = "health"
)
