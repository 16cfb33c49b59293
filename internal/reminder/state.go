package reminder

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/nudge/internal/constants"
	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/storage"
	"github.com/julianstephens/nudge/internal/utils"
)

type stateKey struct {
	TaskID string `json:"task_id"`
	Date   string `json:"date"`
}

// State is the set of tasks already reminded, keyed by task and local date.
// An entry from an earlier date never suppresses a reminder today.
type State struct {
	entries map[stateKey]struct{}
}

func NewState() *State {
	return &State{entries: make(map[stateKey]struct{})}
}

// Has reports whether taskID was reminded on now's date.
func (s *State) Has(taskID string, now time.Time) bool {
	_, ok := s.entries[stateKey{TaskID: taskID, Date: utils.DateKey(now)}]
	return ok
}

func (s *State) Mark(taskID string, now time.Time) {
	s.entries[stateKey{TaskID: taskID, Date: utils.DateKey(now)}] = struct{}{}
}

// Forget drops every entry for taskID.
func (s *State) Forget(taskID string) {
	for k := range s.entries {
		if k.TaskID == taskID {
			delete(s.entries, k)
		}
	}
}

// Prune drops entries whose date is not now's date and returns how many were removed.
func (s *State) Prune(now time.Time) int {
	today := utils.DateKey(now)
	removed := 0
	for k := range s.entries {
		if k.Date != today {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *State) Len() int {
	return len(s.entries)
}

func (s *State) MarshalJSON() ([]byte, error) {
	keys := make([]stateKey, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].TaskID < keys[j].TaskID
	})
	return json.Marshal(keys)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var keys []stateKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	entries := make(map[stateKey]struct{}, len(keys))
	for _, k := range keys {
		if k.TaskID == "" {
			return fmt.Errorf("reminder state entry without task id")
		}
		if _, err := time.Parse(constants.DateFormat, k.Date); err != nil {
			return fmt.Errorf("reminder state entry has invalid date %q: %w", k.Date, err)
		}
		entries[k] = struct{}{}
	}
	s.entries = entries
	return nil
}

// LoadState reads persisted state from kv. A missing value yields an empty
// state; a malformed one yields an empty state and ErrMalformedState.
func LoadState(kv storage.KV) (*State, error) {
	state := NewState()
	data, ok, err := kv.Get(constants.ReminderStateKey)
	if err != nil {
		return state, err
	}
	if !ok {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Discarding malformed reminder state", "key", constants.ReminderStateKey, "error", err)
		return NewState(), fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedState, constants.ReminderStateKey, err)
	}
	return state, nil
}

// SaveState writes state to kv under the reminder state key.
func SaveState(kv storage.KV, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode reminder state: %w", err)
	}
	return kv.Set(constants.ReminderStateKey, data)
}
