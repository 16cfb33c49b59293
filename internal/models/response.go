package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type ResponseKind string

const (
	ResponseDone    ResponseKind = "done"
	ResponseNotDone ResponseKind = "not_done"
)

// ParseResponseKind accepts the canonical kinds plus the yes/no shorthands.
func ParseResponseKind(s string) (ResponseKind, error) {
	switch s {
	case "done", "yes", "y":
		return ResponseDone, nil
	case "not_done", "not-done", "no", "n":
		return ResponseNotDone, nil
	default:
		return "", fmt.Errorf("invalid response %q (expected done or not_done)", s)
	}
}

type Response struct {
	Kind      ResponseKind
	Timestamp time.Time
}

// ResponseLog is the append-only record of reminder acknowledgments.
// It is persisted as {"yes": [...], "no": [...]} with RFC3339 timestamps.
type ResponseLog struct {
	Done    []time.Time `json:"yes"`
	NotDone []time.Time `json:"no"`
}

// Append adds a response; entries keep insertion order per kind.
func (l *ResponseLog) Append(kind ResponseKind, at time.Time) error {
	switch kind {
	case ResponseDone:
		l.Done = append(l.Done, at)
	case ResponseNotDone:
		l.NotDone = append(l.NotDone, at)
	default:
		return fmt.Errorf("invalid response kind %q", kind)
	}
	return nil
}

// Len returns the total number of recorded responses
func (l *ResponseLog) Len() int {
	return len(l.Done) + len(l.NotDone)
}

// Responses flattens the log, done entries first, each kind in insertion order.
func (l *ResponseLog) Responses() []Response {
	out := make([]Response, 0, l.Len())
	for _, t := range l.Done {
		out = append(out, Response{Kind: ResponseDone, Timestamp: t})
	}
	for _, t := range l.NotDone {
		out = append(out, Response{Kind: ResponseNotDone, Timestamp: t})
	}
	return out
}

func (l ResponseLog) MarshalJSON() ([]byte, error) {
	format := func(ts []time.Time) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.Format(time.RFC3339Nano)
		}
		return out
	}
	return json.Marshal(struct {
		Yes []string `json:"yes"`
		No  []string `json:"no"`
	}{Yes: format(l.Done), No: format(l.NotDone)})
}

func (l *ResponseLog) UnmarshalJSON(data []byte) error {
	var raw struct {
		Yes []string `json:"yes"`
		No  []string `json:"no"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parse := func(ss []string) ([]time.Time, error) {
		out := make([]time.Time, 0, len(ss))
		for _, s := range ss {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
			}
			out = append(out, t)
		}
		return out, nil
	}
	done, err := parse(raw.Yes)
	if err != nil {
		return err
	}
	notDone, err := parse(raw.No)
	if err != nil {
		return err
	}
	l.Done, l.NotDone = done, notDone
	return nil
}

// MonthlyStats is derived from a ResponseLog and never stored.
type MonthlyStats struct {
	DoneCount    int `json:"done_count"`
	NotDoneCount int `json:"not_done_count"`
}

// Total returns the number of responses counted
func (s MonthlyStats) Total() int {
	return s.DoneCount + s.NotDoneCount
}

// Rate returns the completion percentage, 0 when nothing was recorded
func (s MonthlyStats) Rate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.DoneCount) / float64(s.Total()) * 100
}
