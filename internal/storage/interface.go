package storage

import (
	"errors"

	"github.com/julianstephens/nudge/internal/models"
)

var (
	// ErrNotFound is returned when a user, session or task does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value (e.g. an email) is already taken
	ErrConflict = errors.New("already exists")
)

// KV is the durable key-value store backing the response log and reminder state.
type KV interface {
	// Get returns the stored bytes and whether the key was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

type SettingsStore interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// AccountStore holds task API users and their bearer sessions.
type AccountStore interface {
	AddUser(models.User) error
	GetUserByEmail(email string) (models.User, error)
	AddSession(token, userID string) error
	GetSessionUser(token string) (models.User, error)
	DeleteSession(token string) error
}

// TaskRepository holds task API tasks, always scoped to their owner.
type TaskRepository interface {
	AddTask(userID string, task models.Task) error
	GetTask(userID, id string) (models.Task, error)
	GetAllTasks(userID string) ([]models.Task, error)
	UpdateTask(userID string, task models.Task) error
	DeleteTask(userID, id string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	KV
	SettingsStore
	AccountStore
	TaskRepository

	// Utils
	GetConfigPath() string
}
