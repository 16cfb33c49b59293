package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/reminder"
	"github.com/julianstephens/nudge/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// loop messages are handled in every state so reminders keep firing
	// while a form is open
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tickMsg:
		m.tick()
		return m, m.schedulePoll()

	case refreshMsg:
		cmds := []tea.Cmd{m.scheduleRefresh()}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetchTasks())
		}
		return m, tea.Batch(cmds...)

	case tasksMsg:
		m.fetching = false
		if msg.err != nil {
			// keep the previous snapshot until the next refresh
			logger.Warn("Task refresh failed", "error", msg.err)
			m.setError(fmt.Sprintf("Could not refresh tasks: %v", msg.err))
			return m, nil
		}
		m.engine.SetTasks(msg.tasks)
		m.lastRefresh = m.clock.Now()
		m.syncTaskList()
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to save task: %v", msg.err))
			return m, nil
		}
		verb := "Updated"
		if msg.added {
			verb = "Added"
		}
		m.setStatus(fmt.Sprintf("%s %q", verb, msg.task.Name))
		m.fetching = true
		return m, m.fetchTasks()

	case taskDeletedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to delete task: %v", msg.err))
			return m, nil
		}
		m.engine.RemoveTask(msg.id)
		m.setStatus(fmt.Sprintf("Deleted %q", msg.name))
		m.fetching = true
		return m, m.fetchTasks()

	case tasklist.AddTaskMsg:
		return m, m.openForm("", &TaskFormModel{})

	case tasklist.EditTaskMsg:
		return m, m.openForm(msg.Task.ID, taskFormFrom(msg.Task))

	case tasklist.DeleteTaskMsg:
		m.deleteID = msg.ID
		m.deleteName = msg.Name
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok && !(m.state == StateTasks && m.taskList.Filtering()) {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateTasks {
				m.state = StateStats
			} else {
				m.state = StateTasks
			}
			return m, nil
		case key.Matches(msg, m.keys.Done):
			m.respond(models.ResponseDone)
			return m, nil
		case key.Matches(msg, m.keys.NotDone):
			m.respond(models.ResponseNotDone)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if !m.fetching {
				m.fetching = true
				m.setStatus("Refreshing…")
				return m, m.fetchTasks()
			}
			return m, nil
		}
	}

	if m.state == StateTasks {
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m *Model) tick() {
	if added := m.engine.Tick(m.clock.Now()); len(added) > 0 {
		m.syncTaskList()
	}
}

func (m *Model) respond(kind models.ResponseKind) {
	rem, err := m.engine.Acknowledge(kind, m.clock.Now())
	switch {
	case errors.Is(err, reminder.ErrNoPendingReminder):
		m.setStatus("Nothing to answer right now.")
	case err != nil && rem.ID == "":
		m.setError(err.Error())
	case err != nil:
		m.setError(fmt.Sprintf("Answered %q but the response was not saved: %v", rem.Task.Name, err))
	default:
		m.setStatus(fmt.Sprintf("Recorded %s for %q", kind, rem.Task.Name))
	}
}

func (m *Model) openForm(id string, fm *TaskFormModel) tea.Cmd {
	m.editingID = id
	m.taskForm = fm
	m.form = NewTaskForm(fm)
	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.saveTask(m.editingID, m.taskForm.payload(m.editingID == "")))
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		id, name := m.deleteID, m.deleteName
		m.deleteID, m.deleteName = "", ""
		m.state = m.previousState
		return m, m.deleteTask(id, name)
	case "n", "N", "esc":
		m.deleteID, m.deleteName = "", ""
		m.state = m.previousState
	}
	return m, nil
}
