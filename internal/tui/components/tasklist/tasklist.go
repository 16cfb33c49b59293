package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nudge/internal/models"
)

type AddTaskMsg struct{}

type DeleteTaskMsg struct {
	ID   string
	Name string
}

type EditTaskMsg struct {
	Task models.Task
}

type Item struct {
	Task     models.Task
	Reminded bool
}

func (i Item) Title() string {
	if i.Reminded {
		return "✓ " + i.Task.Name
	}
	return i.Task.Name
}

func (i Item) Description() string {
	desc := i.Task.DeadlineString()
	if !i.Task.HasDeadline() {
		desc = "no reminder"
	}
	if i.Task.Category != "" {
		desc += " | " + i.Task.Category
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(items(tasks, nil), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task, reminded func(string) bool) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t, Reminded: reminded != nil && reminded(t.ID)}
	}
	return out
}

// SetTasks replaces the list contents. reminded marks tasks already
// reminded today; it may be nil.
func (m *Model) SetTasks(tasks []models.Task, reminded func(string) bool) {
	m.list.SetItems(items(tasks, reminded))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter, in which case
// single-key shortcuts belong to the filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditTaskMsg{Task: i.Task} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Task.ID, Name: i.Task.Name} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
