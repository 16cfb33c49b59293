package models

import (
	"fmt"

	"github.com/julianstephens/nudge/internal/constants"
)

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	return Settings{
		APIURL:               constants.DefaultAPIURL,
		PollIntervalSec:      constants.DefaultPollIntervalSec,
		RefreshIntervalSec:   constants.DefaultRefreshIntervalSec,
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		SoundEnabled:         constants.DefaultSoundEnabled,
		CueIntervalSec:       constants.DefaultCueIntervalSec,
		PersistReminderState: constants.DefaultPersistReminderState,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from the map keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingAPIURL:
			settings.APIURL = value
		case constants.SettingPollIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.PollIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing poll_interval_sec: %w", err)
			}
		case constants.SettingRefreshIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.RefreshIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing refresh_interval_sec: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingSoundEnabled:
			settings.SoundEnabled = value == "true"
		case constants.SettingCueIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.CueIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing cue_interval_sec: %w", err)
			}
		case constants.SettingPersistReminderState:
			settings.PersistReminderState = value == "true"
		}
	}
	ApplyDefaultSettings(&settings)
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingAPIURL:               settings.APIURL,
		constants.SettingPollIntervalSec:      fmt.Sprintf("%d", settings.PollIntervalSec),
		constants.SettingRefreshIntervalSec:   fmt.Sprintf("%d", settings.RefreshIntervalSec),
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingSoundEnabled:         fmt.Sprintf("%v", settings.SoundEnabled),
		constants.SettingCueIntervalSec:       fmt.Sprintf("%d", settings.CueIntervalSec),
		constants.SettingPersistReminderState: fmt.Sprintf("%v", settings.PersistReminderState),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.APIURL == "" {
		settings.APIURL = constants.DefaultAPIURL
	}
	if settings.PollIntervalSec <= 0 {
		settings.PollIntervalSec = constants.DefaultPollIntervalSec
	}
	if settings.RefreshIntervalSec <= 0 {
		settings.RefreshIntervalSec = constants.DefaultRefreshIntervalSec
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.CueIntervalSec <= 0 {
		settings.CueIntervalSec = constants.DefaultCueIntervalSec
	}
}
