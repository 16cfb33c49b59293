package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${default_addr}" env:"NUDGE_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultServerAddr
	}
	srv := server.NewServer(ctx.Store, addr)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	fmt.Printf("Serving task API on http://%s/api (Ctrl+C to stop)\n", addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("Shutting down task API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
