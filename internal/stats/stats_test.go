package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/recorder"
	"github.com/julianstephens/nudge/internal/storage"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestMonthly(t *testing.T) {
	log := models.ResponseLog{Done: []time.Time{mustTime(t, "2024-03-05T08:00:00Z")}}

	tests := []struct {
		name string
		log  models.ResponseLog
		now  time.Time
		want models.MonthlyStats
	}{
		{"same month", log, mustTime(t, "2024-03-10T12:00:00Z"), models.MonthlyStats{DoneCount: 1}},
		{
			"previous month excluded",
			models.ResponseLog{Done: []time.Time{mustTime(t, "2024-02-28T08:00:00Z")}},
			mustTime(t, "2024-03-10T12:00:00Z"),
			models.MonthlyStats{},
		},
		{"same month other year", log, mustTime(t, "2025-03-10T12:00:00Z"), models.MonthlyStats{}},
		{"empty log", models.ResponseLog{}, mustTime(t, "2024-03-10T12:00:00Z"), models.MonthlyStats{}},
		{
			"both kinds",
			models.ResponseLog{
				Done:    []time.Time{mustTime(t, "2024-03-01T00:00:00Z"), mustTime(t, "2024-03-31T23:59:59Z")},
				NotDone: []time.Time{mustTime(t, "2024-03-15T10:00:00Z"), mustTime(t, "2024-04-01T00:00:00Z")},
			},
			mustTime(t, "2024-03-10T12:00:00Z"),
			models.MonthlyStats{DoneCount: 2, NotDoneCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Monthly(tt.log, tt.now); got != tt.want {
				t.Errorf("Monthly() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMonthly_UsesNowLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2024-04-01T02:00Z is still March 31 in New York
	log := models.ResponseLog{Done: []time.Time{mustTime(t, "2024-04-01T02:00:00Z")}}

	if got := Monthly(log, time.Date(2024, 3, 20, 12, 0, 0, 0, ny)); got.DoneCount != 1 {
		t.Errorf("New York March count = %d, want 1", got.DoneCount)
	}
	if got := Monthly(log, mustTime(t, "2024-03-20T12:00:00Z")); got.DoneCount != 0 {
		t.Errorf("UTC March count = %d, want 0", got.DoneCount)
	}
}

func TestRecordThenMonthly(t *testing.T) {
	kv := storage.NewMemoryKV()
	now := mustTime(t, "2024-03-10T12:00:00Z")

	before := Load(kv, now)
	if err := recorder.New(kv).Record(models.ResponseDone, now); err != nil {
		t.Fatal(err)
	}
	after := Load(kv, now)

	if after.DoneCount != before.DoneCount+1 || after.NotDoneCount != before.NotDoneCount {
		t.Errorf("before %+v, after %+v", before, after)
	}
}

func TestLoad_Malformed(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set("taskStats", []byte("not json"))
	if got := Load(kv, time.Now()); got != (models.MonthlyStats{}) {
		t.Errorf("Load on malformed log = %+v, want zero", got)
	}
}

func TestDaily(t *testing.T) {
	log := models.ResponseLog{
		Done:    []time.Time{mustTime(t, "2024-02-01T08:00:00Z"), mustTime(t, "2024-02-29T08:00:00Z")},
		NotDone: []time.Time{mustTime(t, "2024-02-29T09:00:00Z"), mustTime(t, "2024-03-01T09:00:00Z")},
	}
	days := Daily(log, mustTime(t, "2024-02-10T00:00:00Z"))
	if len(days) != 29 {
		t.Fatalf("len = %d, want 29 for a leap February", len(days))
	}
	if days[0].Done != 1 || days[28].Done != 1 || days[28].NotDone != 1 {
		t.Errorf("unexpected counts: first %+v, last %+v", days[0], days[28])
	}
}

func TestRender(t *testing.T) {
	month := mustTime(t, "2024-03-10T12:00:00Z")

	empty := Render(models.MonthlyStats{}, month, 20)
	if !strings.Contains(empty, "2024-03") || !strings.Contains(empty, "No responses") {
		t.Errorf("empty render = %q", empty)
	}

	out := Render(models.MonthlyStats{DoneCount: 3, NotDoneCount: 1}, month, 20)
	for _, want := range []string{"Done", "Not done", "4 responses", "75%"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0, 10, 20); got != "" {
		t.Errorf("bar(0) = %q", got)
	}
	if got := bar(1, 100, 20); got != "█" {
		t.Errorf("small counts should still draw one cell, got %q", got)
	}
	if got := bar(10, 10, 20); len([]rune(got)) != 20 {
		t.Errorf("full bar width = %d", len([]rune(got)))
	}
}
