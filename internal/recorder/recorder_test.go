package recorder

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

func TestRecord_AppendsInOrder(t *testing.T) {
	kv := storage.NewMemoryKV()
	r := New(kv)

	t1 := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC)

	for _, step := range []struct {
		kind models.ResponseKind
		at   time.Time
	}{
		{models.ResponseDone, t1},
		{models.ResponseNotDone, t2},
		{models.ResponseDone, t3},
	} {
		if err := r.Record(step.kind, step.at); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	log := r.Load()
	if len(log.Done) != 2 || len(log.NotDone) != 1 {
		t.Fatalf("log = %+v", log)
	}
	if !log.Done[0].Equal(t1) || !log.Done[1].Equal(t3) || !log.NotDone[0].Equal(t2) {
		t.Errorf("timestamps not preserved: %+v", log)
	}
}

func TestRecord_InvalidKind(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := New(kv).Record("later", time.Now()); err == nil {
		t.Error("expected error for invalid kind")
	}
	if _, ok, _ := kv.Get("taskStats"); ok {
		t.Error("nothing should be written for an invalid kind")
	}
}

func TestRecord_WriteFailure(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.FailWrites = errors.New("read-only")
	if err := New(kv).Record(models.ResponseDone, time.Now()); err == nil {
		t.Error("expected the write failure to be returned")
	}
}

func TestLoad_MissingAndMalformed(t *testing.T) {
	kv := storage.NewMemoryKV()

	log, err := Load(kv)
	if err != nil || log.Len() != 0 {
		t.Fatalf("Load on empty kv = %+v, %v", log, err)
	}

	kv.Set("taskStats", []byte(`{"yes": "oops"}`))
	log, err = Load(kv)
	if !errors.Is(err, apperrors.ErrMalformedState) {
		t.Errorf("error = %v, want ErrMalformedState", err)
	}
	if log.Len() != 0 {
		t.Errorf("malformed log should be empty, got %+v", log)
	}
}

func TestRecord_ReplacesMalformedLog(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set("taskStats", []byte(`garbage`))

	r := New(kv)
	if err := r.Record(models.ResponseDone, time.Now()); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if log := r.Load(); len(log.Done) != 1 {
		t.Errorf("log = %+v, want one done entry", log)
	}
}

func TestRecord_ReadsBaselineFormat(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Set("taskStats", []byte(`{"yes":["2024-03-05T08:00:00Z"],"no":[]}`))

	r := New(kv)
	if err := r.Record(models.ResponseNotDone, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	log := r.Load()
	if len(log.Done) != 1 || len(log.NotDone) != 1 {
		t.Errorf("log = %+v", log)
	}
}
