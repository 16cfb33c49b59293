package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/nudge/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateKey returns the calendar date of t (YYYY-MM-DD) in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// SameMonth reports whether t falls in ref's calendar month and year,
// evaluated in ref's location.
func SameMonth(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// ParseMonthInLocation parses YYYY-MM and returns the first instant of that
// month in loc.
func ParseMonthInLocation(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month (expected YYYY-MM): %w", err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
