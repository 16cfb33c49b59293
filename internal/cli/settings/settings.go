package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ServerURL            *string `help:"Base URL of the task API to remember."`
	PollInterval         *int    `help:"Seconds between due-task checks."`
	RefreshInterval      *int    `help:"Seconds between task list refreshes."`
	Timezone             *string `help:"IANA timezone name, or Local."`
	NotificationsEnabled *bool   `help:"Enable or disable desktop notifications."`
	SoundEnabled         *bool   `help:"Enable or disable the audible cue."`
	CueInterval          *int    `help:"Seconds between bell rings while a reminder is due."`
	PersistReminderState *bool   `help:"Remember which tasks were reminded today across restarts."`
}

func (c *SettingsCmd) Validate() error {
	for name, v := range map[string]*int{
		"poll-interval":    c.PollInterval,
		"refresh-interval": c.RefreshInterval,
		"cue-interval":     c.CueInterval,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("--%s must be a positive number of seconds", name)
		}
	}
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", *c.Timezone)
	}
	if c.ServerURL != nil && !strings.HasPrefix(*c.ServerURL, "http://") && !strings.HasPrefix(*c.ServerURL, "https://") {
		return fmt.Errorf("API URL must start with http:// or https://")
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  API URL:               %s\n", settings.APIURL)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Poll Interval:         %d sec\n", settings.PollIntervalSec)
		fmt.Printf("  Refresh Interval:      %d sec\n", settings.RefreshIntervalSec)
		fmt.Printf("  Persist State:         %v\n", settings.PersistReminderState)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Sound Enabled:         %v\n", settings.SoundEnabled)
		fmt.Printf("  Cue Interval:          %d sec\n", settings.CueIntervalSec)
		return nil
	}

	updated := false
	if c.ServerURL != nil {
		settings.APIURL = strings.TrimRight(*c.ServerURL, "/")
		updated = true
	}
	if c.PollInterval != nil {
		settings.PollIntervalSec = *c.PollInterval
		updated = true
	}
	if c.RefreshInterval != nil {
		settings.RefreshIntervalSec = *c.RefreshInterval
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.SoundEnabled != nil {
		settings.SoundEnabled = *c.SoundEnabled
		updated = true
	}
	if c.CueInterval != nil {
		settings.CueIntervalSec = *c.CueInterval
		updated = true
	}
	if c.PersistReminderState != nil {
		settings.PersistReminderState = *c.PersistReminderState
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
