package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/storage"
)

// ErrNoPendingReminder is returned by Acknowledge when no reminder is awaiting a response.
var ErrNoPendingReminder = errors.New("no reminder is awaiting a response")

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDue
	PhaseAcknowledged
)

func (p Phase) String() string {
	switch p {
	case PhaseDue:
		return "due"
	case PhaseAcknowledged:
		return "acknowledged"
	default:
		return "idle"
	}
}

// Reminder is one reminder instance for a task on a given day.
type Reminder struct {
	ID       string
	Task     models.Task
	DueAt    time.Time
	Phase    Phase
	Response models.ResponseKind
	AckedAt  time.Time
}

// Presenter surfaces a due reminder to the user. Notify must not block.
type Presenter interface {
	Notify(task models.Task)
	Stop()
}

// Recorder persists the user's answer to a reminder.
type Recorder interface {
	Record(kind models.ResponseKind, now time.Time) error
}

// Poll returns the tasks due at now, in input order. A task is due when its
// deadline hour and minute equal now's in now's location and it has not been
// reminded on now's date. Poll does not modify reminded.
func Poll(tasks []models.Task, now time.Time, reminded *State) []models.Task {
	var due []models.Task
	for _, t := range tasks {
		if t.Deadline == nil || !t.Deadline.Matches(now) {
			continue
		}
		if reminded != nil && reminded.Has(t.ID, now) {
			continue
		}
		due = append(due, t)
	}
	return due
}

// Engine owns the task snapshot, the reminded-today state and the FIFO queue
// of due reminders. It is not safe for concurrent use; a single event loop
// must own it.
type Engine struct {
	tasks     []models.Task
	state     *State
	queue     []*Reminder
	presenter Presenter
	recorder  Recorder
	kv        storage.KV
	lastTick  time.Time
}

type Option func(*Engine)

func WithPresenter(p Presenter) Option {
	return func(e *Engine) { e.presenter = p }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithStatePersistence keeps the reminded-today state in kv across restarts.
func WithStatePersistence(kv storage.KV) Option {
	return func(e *Engine) { e.kv = kv }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{state: NewState()}
	for _, opt := range opts {
		opt(e)
	}
	if e.kv != nil {
		state, err := LoadState(e.kv)
		if err != nil {
			logger.Warn("Starting with empty reminder state", "error", err)
		}
		e.state = state
	}
	return e
}

// SetTasks replaces the task snapshot. Queued reminders are kept.
func (e *Engine) SetTasks(tasks []models.Task) {
	e.tasks = append([]models.Task(nil), tasks...)
}

func (e *Engine) Tasks() []models.Task {
	return append([]models.Task(nil), e.tasks...)
}

// RemoveTask forgets a deleted task: its snapshot entry, reminded marker and
// any queued reminder. Removing the active reminder stops its cue.
func (e *Engine) RemoveTask(id string) {
	kept := e.tasks[:0]
	for _, t := range e.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	e.tasks = kept
	e.state.Forget(id)

	wasActive := len(e.queue) > 0 && e.queue[0].Task.ID == id
	queue := e.queue[:0]
	for _, r := range e.queue {
		if r.Task.ID != id {
			queue = append(queue, r)
		}
	}
	e.queue = queue
	if wasActive {
		e.stopCue()
		e.activate()
	}
	e.persist()
}

// Tick polls the snapshot at now, marks every due task as reminded and
// queues a reminder for each. It returns the newly queued reminders.
func (e *Engine) Tick(now time.Time) []*Reminder {
	if !e.lastTick.IsZero() && now.Sub(e.lastTick) > time.Minute {
		logger.Debug("Poll gap exceeded one minute, deadlines in between are skipped",
			"from", e.lastTick.Format(time.RFC3339), "to", now.Format(time.RFC3339))
	}
	e.lastTick = now

	pruned := e.state.Prune(now)
	due := Poll(e.tasks, now, e.state)

	wasIdle := len(e.queue) == 0
	added := make([]*Reminder, 0, len(due))
	for _, t := range due {
		e.state.Mark(t.ID, now)
		r := &Reminder{
			ID:    uuid.New().String(),
			Task:  t,
			DueAt: now,
			Phase: PhaseDue,
		}
		e.queue = append(e.queue, r)
		added = append(added, r)
		logger.Info("Task due", "task", t.Name, "deadline", t.DeadlineString(), "reminder", r.ID)
	}

	if len(added) > 0 || pruned > 0 {
		e.persist()
	}
	if wasIdle && len(added) > 0 {
		e.activate()
	}
	return added
}

// Active returns the reminder awaiting a response, or nil.
func (e *Engine) Active() *Reminder {
	if len(e.queue) == 0 {
		return nil
	}
	return e.queue[0]
}

// Reminded reports whether the task was already reminded on now's date.
func (e *Engine) Reminded(taskID string, now time.Time) bool {
	return e.state.Has(taskID, now)
}

// Pending returns copies of every queued reminder, active first.
func (e *Engine) Pending() []Reminder {
	out := make([]Reminder, len(e.queue))
	for i, r := range e.queue {
		out[i] = *r
	}
	return out
}

// Acknowledge answers the active reminder: exactly one response is recorded,
// the cue stops and the next queued reminder becomes active. A recording
// failure is returned alongside the acknowledged reminder; the queue still
// advances.
func (e *Engine) Acknowledge(kind models.ResponseKind, now time.Time) (Reminder, error) {
	if kind != models.ResponseDone && kind != models.ResponseNotDone {
		return Reminder{}, fmt.Errorf("invalid response kind %q", kind)
	}
	if len(e.queue) == 0 {
		return Reminder{}, ErrNoPendingReminder
	}

	r := e.queue[0]
	e.queue = e.queue[1:]
	r.Phase = PhaseAcknowledged
	r.Response = kind
	r.AckedAt = now
	e.stopCue()

	var recordErr error
	if e.recorder != nil {
		if recordErr = e.recorder.Record(kind, now); recordErr != nil {
			logger.Error("Failed to record response", "task", r.Task.Name, "response", kind, "error", recordErr)
		}
	}
	logger.Info("Reminder acknowledged", "task", r.Task.Name, "response", kind, "reminder", r.ID)

	e.activate()
	return *r, recordErr
}

func (e *Engine) activate() {
	if e.presenter == nil || len(e.queue) == 0 {
		return
	}
	e.presenter.Notify(e.queue[0].Task)
}

func (e *Engine) stopCue() {
	if e.presenter != nil {
		e.presenter.Stop()
	}
}

func (e *Engine) persist() {
	if e.kv == nil {
		return
	}
	if err := SaveState(e.kv, e.state); err != nil {
		logger.Warn("Failed to persist reminder state", "error", err)
	}
}
