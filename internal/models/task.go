package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nudge/internal/constants"
)

// TimeOfDay is a wall-clock time without a date, interpreted in the local time zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Valid reports whether the value is within 00:00–23:59.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Matches reports whether now falls within this time's minute, in now's location.
func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Task struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category,omitempty"`
	Deadline *TimeOfDay `json:"deadline,omitempty"` // nil means the task is never reminded
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.Deadline != nil && !t.Deadline.Valid() {
		return fmt.Errorf("invalid deadline %s", t.Deadline)
	}
	return nil
}

// HasDeadline returns true if the task carries a reminder time
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}

// DeadlineString returns the deadline as HH:MM, or "-" when unset
func (t *Task) DeadlineString() string {
	if t.Deadline == nil {
		return "-"
	}
	return t.Deadline.String()
}
