package constants

const (
	SettingAPIURL               = "api_url"
	SettingPollIntervalSec      = "poll_interval_sec"
	SettingRefreshIntervalSec   = "refresh_interval_sec"
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingSoundEnabled         = "sound_enabled"
	SettingCueIntervalSec       = "cue_interval_sec"
	SettingPersistReminderState = "persist_reminder_state"

	// Default Settings Values
	DefaultPollIntervalSec      = 10
	DefaultRefreshIntervalSec   = 60
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
	DefaultSoundEnabled         = true
	DefaultCueIntervalSec       = 2
	DefaultPersistReminderState = true
)
