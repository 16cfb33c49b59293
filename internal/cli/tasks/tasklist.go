package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/nudge/internal/cli"
)

type TaskListCmd struct {
	ShowIDs bool `help:"Show task IDs."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	tasks, err := client.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found. Add one with 'nudge task add'.")
		return nil
	}

	for _, task := range tasks {
		if c.ShowIDs {
			fmt.Printf("%s  %-5s  %-24s  [%s]\n", task.ID, task.DeadlineString(), task.Name, task.Category)
		} else {
			fmt.Printf("%-5s  %-24s  [%s]\n", task.DeadlineString(), task.Name, task.Category)
		}
	}
	return nil
}
