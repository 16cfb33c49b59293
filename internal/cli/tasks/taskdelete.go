package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/nudge/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	if err := client.Delete(context.Background(), c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s\n", c.ID)
	return nil
}
