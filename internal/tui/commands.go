package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/taskstore"
)

type tickMsg time.Time

type refreshMsg struct{}

type tasksMsg struct {
	tasks []models.Task
	err   error
}

type taskSavedMsg struct {
	task  models.Task
	added bool
	err   error
}

type taskDeletedMsg struct {
	id   string
	name string
	err  error
}

func (m Model) tickNow() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) fetchTasks() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		tasks, err := client.List(ctx)
		return tasksMsg{tasks: tasks, err: err}
	}
}

func (m Model) saveTask(id string, payload taskstore.TaskPayload) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		if id == "" {
			task, err := client.Create(ctx, payload)
			return taskSavedMsg{task: task, added: true, err: err}
		}
		task, err := client.Update(ctx, id, payload)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m Model) deleteTask(id, name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
		defer cancel()
		return taskDeletedMsg{id: id, name: name, err: client.Delete(ctx, id)}
	}
}
