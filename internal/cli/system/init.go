package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if postgres.IsConnString(dbPath) || dbPath == "postgresql" {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		if _, err := os.Stat(dbPath); err == nil {
			// close first so the file is not locked
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized nudge storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
