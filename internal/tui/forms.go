package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/taskstore"
)

// NewTaskForm creates the add/edit task form. An empty deadline means the
// task is never reminded.
func NewTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Description("Leave empty for no reminder").
				Value(&fm.Deadline).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := models.ParseTimeOfDay(s)
					return err
				}),
			huh.NewInput().
				Title("Category").
				Placeholder(constants.DefaultCategory).
				Value(&fm.Category),
		),
	).WithTheme(huh.ThemeDracula())
}

func taskFormFrom(task models.Task) *TaskFormModel {
	fm := &TaskFormModel{Name: task.Name, Category: task.Category}
	if task.Deadline != nil {
		fm.Deadline = task.Deadline.String()
	}
	return fm
}

// payload converts the form into an API payload. Adding omits an empty
// deadline; editing sends it so the deadline is cleared.
func (fm *TaskFormModel) payload(adding bool) taskstore.TaskPayload {
	name := strings.TrimSpace(fm.Name)
	category := strings.TrimSpace(fm.Category)
	deadline := strings.TrimSpace(fm.Deadline)
	if deadline != "" {
		if tod, err := models.ParseTimeOfDay(deadline); err == nil {
			deadline = tod.String()
		}
	}

	if adding {
		return taskstore.NewPayload(name, category, deadline)
	}
	p := taskstore.TaskPayload{Name: &name, Deadline: &deadline}
	if category != "" {
		p.Category = &category
	}
	return p
}
