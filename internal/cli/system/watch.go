package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/tui"
)

func attachedToTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// WatchCmd shows the interactive reminder TUI, or falls back to line mode
// when not attached to a terminal.
type WatchCmd struct {
	Lines bool `help:"Use line mode even when attached to a terminal."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if c.Lines || !attachedToTerminal() {
		logger.Debug("Starting reminder loop in line mode")
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runLineMode(sigCtx, ctx, os.Stdin, os.Stdout)
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock(settings)
	if err != nil {
		return err
	}

	// the renderer owns stdout, so the bell goes to stderr
	engine, presenter := ctx.NewEngine(settings, os.Stderr)
	defer presenter.Wait()
	defer presenter.Stop()

	model := tui.NewModel(tui.Config{
		Engine:          engine,
		Client:          client,
		KV:              ctx.Store,
		Clock:           clock,
		PollInterval:    settings.PollInterval(),
		RefreshInterval: settings.RefreshInterval(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
