package reminder

import (
	"encoding/json"
	"errors"
	"testing"

	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/storage"
)

func TestState_DailyReset(t *testing.T) {
	s := NewState()
	s.Mark("a", day(5, 8, 0, 0))

	if !s.Has("a", day(5, 23, 59, 59)) {
		t.Error("marker should hold for the rest of the day")
	}
	if s.Has("a", day(6, 8, 0, 0)) {
		t.Error("marker from yesterday must not suppress today")
	}

	if removed := s.Prune(day(6, 0, 0, 0)); removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after prune", s.Len())
	}
}

func TestState_Forget(t *testing.T) {
	s := NewState()
	s.Mark("a", day(5, 8, 0, 0))
	s.Mark("b", day(5, 8, 0, 0))
	s.Forget("a")
	if s.Has("a", day(5, 8, 0, 0)) || !s.Has("b", day(5, 8, 0, 0)) {
		t.Error("Forget removed the wrong entries")
	}
}

func TestState_JSON(t *testing.T) {
	s := NewState()
	s.Mark("b", day(5, 8, 0, 0))
	s.Mark("a", day(5, 9, 0, 0))

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"task_id":"a","date":"2024-03-05"},{"task_id":"b","date":"2024-03-05"}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	decoded := NewState()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Has("a", day(5, 0, 0, 0)) || !decoded.Has("b", day(5, 0, 0, 0)) {
		t.Error("round trip lost entries")
	}

	if err := json.Unmarshal([]byte(`[{"task_id":"a","date":"yesterday"}]`), decoded); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestLoadState(t *testing.T) {
	kv := storage.NewMemoryKV()

	s, err := LoadState(kv)
	if err != nil || s.Len() != 0 {
		t.Fatalf("LoadState on empty kv = %d entries, %v", s.Len(), err)
	}

	kv.Set("remindedToday", []byte(`"nope"`))
	s, err = LoadState(kv)
	if !errors.Is(err, apperrors.ErrMalformedState) {
		t.Errorf("error = %v, want ErrMalformedState", err)
	}
	if s == nil || s.Len() != 0 {
		t.Error("malformed state should load as empty")
	}

	good := NewState()
	good.Mark("a", day(5, 8, 0, 0))
	if err := SaveState(kv, good); err != nil {
		t.Fatal(err)
	}
	s, err = LoadState(kv)
	if err != nil || !s.Has("a", day(5, 12, 0, 0)) {
		t.Errorf("LoadState after save = %v, %v", s.Len(), err)
	}
}
