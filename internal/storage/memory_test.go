package storage

import (
	"errors"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	if _, ok, err := kv.Get("missing"); ok || err != nil {
		t.Errorf("Get(missing) = ok %v, err %v", ok, err)
	}

	value := []byte(`{"yes":[],"no":[]}`)
	if err := kv.Set("taskStats", value); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value[0] = 'X' // caller mutation must not leak into the store

	got, ok, err := kv.Get("taskStats")
	if err != nil || !ok {
		t.Fatalf("Get: ok %v, err %v", ok, err)
	}
	if string(got) != `{"yes":[],"no":[]}` {
		t.Errorf("Get() = %s", got)
	}

	kv.FailWrites = errors.New("disk full")
	if err := kv.Set("taskStats", []byte("{}")); err == nil {
		t.Error("expected write failure")
	}
}
