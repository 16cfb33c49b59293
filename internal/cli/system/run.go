package system

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/notifier"
	"github.com/julianstephens/nudge/internal/reminder"
	"github.com/julianstephens/nudge/internal/stats"
	"github.com/julianstephens/nudge/internal/storage"
)

// RunCmd runs the reminder loop without a TUI, reading answers from stdin.
type RunCmd struct{}

func (c *RunCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runLineMode(sigCtx, ctx, os.Stdin, os.Stdout)
}

func runLineMode(ctx context.Context, appCtx *cli.Context, in io.Reader, out io.Writer) error {
	settings, err := appCtx.Settings()
	if err != nil {
		return err
	}
	client, err := appCtx.Client()
	if err != nil {
		return err
	}
	clock, err := appCtx.Clock(settings)
	if err != nil {
		return err
	}

	w := &lockedWriter{w: out}
	engine, presenter := appCtx.NewEngine(settings, w)
	runner := reminder.NewRunner(engine, client, clock, settings.PollInterval(), settings.RefreshInterval())

	return (&lineSession{
		runner:    runner,
		presenter: presenter,
		kv:        appCtx.Store,
		clock:     clock,
		out:       w,
	}).run(ctx, in)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type lineSession struct {
	runner    *reminder.Runner
	presenter *notifier.Presenter
	kv        storage.KV
	clock     reminder.Clock
	out       io.Writer
}

const lineHelp = "Answer with y (done) or n (not done). s shows this month's stats, q quits."

func (s *lineSession) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.runner.OnDue = func(r reminder.Reminder) {
		fmt.Fprintf(s.out, "\n⏰ %s [y/n] ", notifier.Message(r.Task))
	}
	s.runner.OnRefresh = func(tasks []models.Task, err error) {
		if err != nil {
			fmt.Fprintf(s.out, "⚠ Could not refresh tasks: %v\n", err)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- s.runner.Run(ctx)
	}()

	fmt.Fprintln(s.out, "Watching for due tasks. "+lineHelp)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(done)
		case line, ok := <-lines:
			if !ok {
				// input closed; keep reminding until cancelled
				lines = nil
				continue
			}
			if quit := s.handle(ctx, line); quit {
				cancel()
				return s.shutdown(done)
			}
		}
	}
}

func (s *lineSession) handle(ctx context.Context, line string) bool {
	switch strings.ToLower(line) {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "s", "stats":
		now := s.clock.Now()
		fmt.Fprintln(s.out, stats.Render(stats.Load(s.kv, now), now, 0))
		return false
	case "?", "h", "help":
		fmt.Fprintln(s.out, lineHelp)
		return false
	}

	kind, err := models.ParseResponseKind(strings.ToLower(line))
	if err != nil {
		fmt.Fprintln(s.out, err)
		return false
	}

	rem, err := s.runner.Acknowledge(ctx, kind)
	switch {
	case errors.Is(err, reminder.ErrNoPendingReminder):
		fmt.Fprintln(s.out, "Nothing to answer right now.")
	case err != nil && rem.ID == "":
		fmt.Fprintf(s.out, "⚠ %v\n", err)
	case err != nil:
		fmt.Fprintf(s.out, "Answered %q but the response was not saved: %v\n", rem.Task.Name, err)
	default:
		fmt.Fprintf(s.out, "✓ Recorded %s for %q\n", kind, rem.Task.Name)
	}
	return false
}

func (s *lineSession) shutdown(done <-chan error) error {
	err := <-done
	s.presenter.Stop()
	s.presenter.Wait()
	fmt.Fprintln(s.out, "\nStopped.")
	return err
}
