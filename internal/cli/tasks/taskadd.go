package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/taskstore"
)

type TaskAddCmd struct {
	Name     string `arg:"" help:"Task name."`
	Deadline string `short:"d" help:"Daily reminder time (HH:MM)." required:""`
	Category string `short:"c" help:"Task category." default:"health"`
}

func (c *TaskAddCmd) Validate() error {
	if _, err := models.ParseTimeOfDay(c.Deadline); err != nil {
		return fmt.Errorf("invalid deadline: %w", err)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	deadline, _ := models.ParseTimeOfDay(c.Deadline) // already validated
	task, err := client.Create(context.Background(), taskstore.NewPayload(c.Name, c.Category, deadline.String()))
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s at %s (ID: %s)\n", task.Name, task.DeadlineString(), task.ID)
	return nil
}
