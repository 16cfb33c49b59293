package stats

import (
	"time"

	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/recorder"
	"github.com/julianstephens/nudge/internal/storage"
	"github.com/julianstephens/nudge/internal/utils"
)

// Monthly counts the responses whose timestamp falls in now's calendar month
// and year, evaluated in now's location.
func Monthly(log models.ResponseLog, now time.Time) models.MonthlyStats {
	var s models.MonthlyStats
	for _, t := range log.Done {
		if utils.SameMonth(t, now) {
			s.DoneCount++
		}
	}
	for _, t := range log.NotDone {
		if utils.SameMonth(t, now) {
			s.NotDoneCount++
		}
	}
	return s
}

// Load reads the persisted response log and aggregates it for now's month.
// Unreadable state counts as an empty log.
func Load(kv storage.KV, now time.Time) models.MonthlyStats {
	log, err := recorder.Load(kv)
	if err != nil {
		logger.Warn("Computing stats from an empty log", "error", err)
	}
	return Monthly(log, now)
}

// DayCount is the number of responses of each kind on one day of a month.
type DayCount struct {
	Day     int
	Done    int
	NotDone int
}

// Daily breaks now's month down per day, one entry for every day of the month.
func Daily(log models.ResponseLog, now time.Time) []DayCount {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()

	out := make([]DayCount, days)
	for i := range out {
		out[i].Day = i + 1
	}
	for _, t := range log.Done {
		if utils.SameMonth(t, now) {
			out[t.In(loc).Day()-1].Done++
		}
	}
	for _, t := range log.NotDone {
		if utils.SameMonth(t, now) {
			out[t.In(loc).Day()-1].NotDone++
		}
	}
	return out
}
