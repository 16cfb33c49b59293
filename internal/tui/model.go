package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/reminder"
	"github.com/julianstephens/nudge/internal/storage"
	"github.com/julianstephens/nudge/internal/taskstore"
	"github.com/julianstephens/nudge/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateTasks SessionState = iota
	StateStats
	StateEditing
	StateConfirmDelete
)

// TaskClient is the part of the task API the TUI uses.
type TaskClient interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, payload taskstore.TaskPayload) (models.Task, error)
	Update(ctx context.Context, id string, payload taskstore.TaskPayload) (models.Task, error)
	Delete(ctx context.Context, id string) error
}

type Config struct {
	Engine          *reminder.Engine
	Client          TaskClient
	KV              storage.KV
	Clock           reminder.Clock
	PollInterval    time.Duration
	RefreshInterval time.Duration
}

type TaskFormModel struct {
	Name     string
	Deadline string
	Category string
}

type Model struct {
	engine          *reminder.Engine
	client          TaskClient
	kv              storage.KV
	clock           reminder.Clock
	pollInterval    time.Duration
	refreshInterval time.Duration

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	taskList      tasklist.Model
	form          *huh.Form
	taskForm      *TaskFormModel
	editingID     string // empty when adding
	deleteID      string
	deleteName    string

	fetching    bool
	lastRefresh time.Time
	status      string
	statusErr   bool
	quitting    bool
	width       int
	height      int
}

func NewModel(cfg Config) Model {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.DefaultPollInterval
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = constants.DefaultRefreshInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = reminder.SystemClock{Location: time.Local}
	}

	return Model{
		engine:          cfg.Engine,
		client:          cfg.Client,
		kv:              cfg.KV,
		clock:           cfg.Clock,
		pollInterval:    cfg.PollInterval,
		refreshInterval: cfg.RefreshInterval,
		state:           StateTasks,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		taskList:        tasklist.New(cfg.Engine.Tasks(), 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Done, m.keys.NotDone, m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateTasks {
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	respond := []key.Binding{m.keys.Done, m.keys.NotDone}

	var actions []key.Binding
	if m.state == StateTasks {
		actions = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Add, m.keys.Edit, m.keys.Delete}
	}
	return [][]key.Binding{respond, global, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTasks(), m.tickNow(), m.scheduleRefresh())
}

// State returns the current view, mainly for tests.
func (m Model) State() SessionState {
	return m.state
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) syncTaskList() {
	now := m.clock.Now()
	m.taskList.SetTasks(m.engine.Tasks(), func(id string) bool {
		return m.engine.Reminded(id, now)
	})
}
