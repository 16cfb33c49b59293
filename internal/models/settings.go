package models

import "time"

// Settings represents application-wide settings
type Settings struct {
	APIURL               string `json:"api_url"`                // base URL of the task API, e.g. "http://127.0.0.1:5000/api"
	PollIntervalSec      int    `json:"poll_interval_sec"`      // how often the reminder engine checks for due tasks
	RefreshIntervalSec   int    `json:"refresh_interval_sec"`   // how often the task snapshot is refetched
	Timezone             string `json:"timezone"`               // IANA timezone name, or "Local" for system timezone
	NotificationsEnabled bool   `json:"notifications_enabled"`  // whether desktop notifications are requested
	SoundEnabled         bool   `json:"sound_enabled"`          // whether the audible cue plays
	CueIntervalSec       int    `json:"cue_interval_sec"`       // seconds between bell rings while a reminder is due
	PersistReminderState bool   `json:"persist_reminder_state"` // keep reminded-today markers across restarts
}

func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSec) * time.Second
}

func (s Settings) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalSec) * time.Second
}

func (s Settings) CueInterval() time.Duration {
	return time.Duration(s.CueIntervalSec) * time.Second
}
