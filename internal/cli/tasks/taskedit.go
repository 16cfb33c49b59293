package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/taskstore"
)

type TaskEditCmd struct {
	ID       string  `arg:"" help:"Task ID."`
	Name     *string `help:"New task name."`
	Deadline *string `short:"d" help:"New reminder time (HH:MM), or empty to clear it."`
	Category *string `short:"c" help:"New category."`
}

func (c *TaskEditCmd) payload() (taskstore.TaskPayload, error) {
	var p taskstore.TaskPayload
	if c.Name != nil {
		if *c.Name == "" {
			return p, fmt.Errorf("task name cannot be empty")
		}
		p.Name = c.Name
	}
	if c.Deadline != nil {
		deadline := *c.Deadline
		if deadline != "" {
			tod, err := models.ParseTimeOfDay(deadline)
			if err != nil {
				return p, fmt.Errorf("invalid deadline: %w", err)
			}
			deadline = tod.String()
		}
		p.Deadline = &deadline
	}
	if c.Category != nil {
		p.Category = c.Category
	}
	return p, nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	payload, err := c.payload()
	if err != nil {
		return err
	}
	if payload.Name == nil && payload.Deadline == nil && payload.Category == nil {
		fmt.Println("No changes specified. Use --name, --deadline or --category.")
		return nil
	}

	client, err := ctx.Client()
	if err != nil {
		return err
	}

	task, err := client.Update(context.Background(), c.ID, payload)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Updated task: %s at %s (ID: %s)\n", task.Name, task.DeadlineString(), task.ID)
	return nil
}
