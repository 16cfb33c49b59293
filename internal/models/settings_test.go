package models

import (
	"testing"

	"github.com/julianstephens/nudge/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{
		APIURL:               "http://example.test/api",
		PollIntervalSec:      5,
		RefreshIntervalSec:   30,
		Timezone:             "Europe/London",
		NotificationsEnabled: false,
		SoundEnabled:         true,
		CueIntervalSec:       3,
		PersistReminderState: false,
	}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestMapToSettings_Defaults(t *testing.T) {
	out, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if out != DefaultSettings() {
		t.Errorf("expected defaults, got %+v", out)
	}
	if out.PollInterval().Seconds() != constants.DefaultPollIntervalSec {
		t.Errorf("PollInterval() = %v", out.PollInterval())
	}
}

func TestMapToSettings_InvalidNumber(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingPollIntervalSec: "soon"})
	if err == nil {
		t.Error("expected parse error")
	}
}
