package notifier

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCue_PlayPauseReset(t *testing.T) {
	out := &syncBuffer{}
	cue := NewCue(out, 5*time.Millisecond)

	cue.Play()
	cue.Play()
	if !cue.Playing() {
		t.Fatal("cue should be playing")
	}
	waitFor(t, func() bool { return cue.Rings() >= 3 })

	cue.Pause()
	if cue.Playing() {
		t.Error("cue should be paused")
	}
	paused := cue.Rings()
	time.Sleep(20 * time.Millisecond)
	if cue.Rings() != paused {
		t.Errorf("cue rang while paused: %d -> %d", paused, cue.Rings())
	}
	if paused == 0 {
		t.Error("pause should keep the ring count")
	}

	cue.Reset()
	if cue.Rings() != 0 || cue.Playing() {
		t.Errorf("after Reset rings=%d playing=%v", cue.Rings(), cue.Playing())
	}

	for _, r := range out.String() {
		if r != '\a' {
			t.Fatalf("cue wrote %q, want only bell characters", r)
		}
	}
}

func TestCue_RingsImmediately(t *testing.T) {
	cue := NewCue(&syncBuffer{}, time.Hour)
	cue.Play()
	defer cue.Reset()
	waitFor(t, func() bool { return cue.Rings() == 1 })
}
