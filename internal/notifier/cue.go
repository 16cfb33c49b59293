package notifier

import (
	"io"
	"sync"
	"time"
)

const bell = "\a"

// Cue rings the terminal bell at a fixed interval while playing.
type Cue struct {
	mu       sync.Mutex
	out      io.Writer
	interval time.Duration
	stop     chan struct{}
	rings    int
}

func NewCue(out io.Writer, interval time.Duration) *Cue {
	return &Cue{out: out, interval: interval}
}

// Play starts ringing immediately and then once per interval. Playing an
// already playing cue does nothing.
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	go c.loop(stop)
}

// Pause stops ringing and keeps the ring count.
func (c *Cue) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// Reset stops ringing and rewinds the ring count.
func (c *Cue) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
	c.rings = 0
}

func (c *Cue) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Rings returns how many times the bell rang since the last Reset.
func (c *Cue) Rings() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rings
}

func (c *Cue) pauseLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

func (c *Cue) loop(stop chan struct{}) {
	c.ring(stop)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.ring(stop)
		}
	}
}

func (c *Cue) ring(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return
	}
	c.rings++
	io.WriteString(c.out, bell)
}
