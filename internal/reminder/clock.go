package reminder

import (
	"fmt"
	"time"

	"github.com/julianstephens/nudge/internal/utils"
)

// Clock supplies the current local time to the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a clock for an IANA timezone name, or the system zone for "Local".
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
