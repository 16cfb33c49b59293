package reminder

import (
	"context"
	"time"

	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
)

// Fetcher loads the current task list from the task store.
type Fetcher interface {
	List(ctx context.Context) ([]models.Task, error)
}

type fetchResult struct {
	tasks []models.Task
	err   error
}

type ackRequest struct {
	kind  models.ResponseKind
	reply chan ackResult
}

type ackResult struct {
	reminder Reminder
	err      error
}

// Runner drives an Engine from a single goroutine: a poll ticker, a refresh
// ticker, fetch results and acknowledgments are all serialized through Run.
type Runner struct {
	engine          *Engine
	fetcher         Fetcher
	clock           Clock
	pollInterval    time.Duration
	refreshInterval time.Duration

	// OnDue is called from the loop whenever a reminder becomes active.
	OnDue func(Reminder)
	// OnRefresh is called from the loop after each fetch attempt.
	OnRefresh func(tasks []models.Task, err error)

	acks      chan ackRequest
	announced string
}

func NewRunner(engine *Engine, fetcher Fetcher, clock Clock, pollInterval, refreshInterval time.Duration) *Runner {
	return &Runner{
		engine:          engine,
		fetcher:         fetcher,
		clock:           clock,
		pollInterval:    pollInterval,
		refreshInterval: refreshInterval,
		acks:            make(chan ackRequest),
	}
}

// Run blocks until ctx is cancelled. Both tickers are stopped on return.
func (r *Runner) Run(ctx context.Context) error {
	pollTicker := time.NewTicker(r.pollInterval)
	defer pollTicker.Stop()
	refreshTicker := time.NewTicker(r.refreshInterval)
	defer refreshTicker.Stop()

	results := make(chan fetchResult, 1)
	fetching := false
	fetch := func() {
		if fetching || r.fetcher == nil {
			return
		}
		fetching = true
		go func() {
			tasks, err := r.fetcher.List(ctx)
			select {
			case results <- fetchResult{tasks: tasks, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	fetch()
	r.tick()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Reminder loop stopped", "reason", ctx.Err())
			return nil
		case <-pollTicker.C:
			r.tick()
		case <-refreshTicker.C:
			fetch()
		case res := <-results:
			fetching = false
			r.applyFetch(res)
		case req := <-r.acks:
			rem, err := r.engine.Acknowledge(req.kind, r.clock.Now())
			req.reply <- ackResult{reminder: rem, err: err}
			r.announce()
		}
	}
}

// Acknowledge answers the active reminder from outside the loop and waits
// for the loop to process it.
func (r *Runner) Acknowledge(ctx context.Context, kind models.ResponseKind) (Reminder, error) {
	req := ackRequest{kind: kind, reply: make(chan ackResult, 1)}
	select {
	case r.acks <- req:
	case <-ctx.Done():
		return Reminder{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.reminder, res.err
	case <-ctx.Done():
		return Reminder{}, ctx.Err()
	}
}

func (r *Runner) tick() {
	r.engine.Tick(r.clock.Now())
	r.announce()
}

func (r *Runner) applyFetch(res fetchResult) {
	if res.err != nil {
		// keep the previous snapshot and try again on the next refresh
		logger.Warn("Task refresh failed", "error", res.err)
	} else {
		r.engine.SetTasks(res.tasks)
		logger.Debug("Task snapshot refreshed", "count", len(res.tasks))
	}
	if r.OnRefresh != nil {
		r.OnRefresh(res.tasks, res.err)
	}
}

func (r *Runner) announce() {
	active := r.engine.Active()
	if active == nil {
		r.announced = ""
		return
	}
	if active.ID == r.announced {
		return
	}
	r.announced = active.ID
	if r.OnDue != nil {
		r.OnDue(*active)
	}
}
