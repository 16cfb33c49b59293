package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/nudge/internal/constants"
	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
)

type Permission int

const (
	PermissionGranted Permission = iota
	PermissionDenied
)

func (p Permission) String() string {
	if p == PermissionGranted {
		return "granted"
	}
	return "denied"
}

// Sender is a desktop notification backend.
type Sender interface {
	Available() error
	Send(ctx context.Context, text string) error
}

// Presenter shows due reminders as a desktop notification plus an audible
// cue. Without notification permission it falls back to the cue alone.
type Presenter struct {
	sender  Sender
	enabled bool
	cue     *Cue
	wg      sync.WaitGroup
}

type PresenterOption func(*Presenter)

// WithSender enables desktop notifications through s.
func WithSender(s Sender) PresenterOption {
	return func(p *Presenter) {
		p.sender = s
		p.enabled = true
	}
}

// WithCue plays c while a reminder is awaiting a response.
func WithCue(c *Cue) PresenterOption {
	return func(p *Presenter) { p.cue = c }
}

func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Permission asks the environment whether desktop notifications can be shown.
func (p *Presenter) Permission() (Permission, error) {
	if !p.enabled || p.sender == nil {
		return PermissionDenied, fmt.Errorf("%w: notifications are disabled", apperrors.ErrPermissionDenied)
	}
	if err := p.sender.Available(); err != nil {
		return PermissionDenied, fmt.Errorf("%w: %v", apperrors.ErrPermissionDenied, err)
	}
	return PermissionGranted, nil
}

// Message is the notification text for a due task.
func Message(task models.Task) string {
	if task.Deadline == nil {
		return fmt.Sprintf("Time for %q", task.Name)
	}
	return fmt.Sprintf("Time for %q (%s). Did you do it?", task.Name, task.Deadline)
}

// Notify starts the cue and sends the desktop notification in the
// background. It never blocks and never fails; errors are logged.
func (p *Presenter) Notify(task models.Task) {
	if p.cue != nil {
		p.cue.Play()
	}

	perm, err := p.Permission()
	if perm != PermissionGranted {
		logger.Debug("Desktop notification unavailable, using audio cue only", "task", task.Name, "error", err)
		return
	}

	text := Message(task)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		if err := p.sender.Send(ctx, text); err != nil {
			logger.Warn("Failed to send notification", "task", task.Name, "error", err)
		}
	}()
}

// Stop silences the active cue.
func (p *Presenter) Stop() {
	if p.cue != nil {
		p.cue.Reset()
	}
}

// Wait blocks until in-flight notifications finish.
func (p *Presenter) Wait() {
	p.wg.Wait()
}
