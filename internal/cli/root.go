package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/nudge/internal/keyring"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/models"
	"github.com/julianstephens/nudge/internal/notifier"
	"github.com/julianstephens/nudge/internal/recorder"
	"github.com/julianstephens/nudge/internal/reminder"
	"github.com/julianstephens/nudge/internal/storage"
	"github.com/julianstephens/nudge/internal/taskstore"
)

// ErrNotLoggedIn is returned when a command needs an API token and none is configured.
var ErrNotLoggedIn = errors.New("not logged in, run 'nudge login'")

type Context struct {
	Store  storage.Provider
	APIURL string // overrides the api_url setting when set
	Token  string // overrides the keyring token when set
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// BaseURL resolves the task API URL from the flag, then the stored setting.
func (c *Context) BaseURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	settings, err := c.Settings()
	if err != nil {
		logger.Warn("Falling back to default API URL", "error", err)
		return models.DefaultSettings().APIURL
	}
	return settings.APIURL
}

// ResolveToken returns the API token from the flag or the OS keyring.
func (c *Context) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	token, err := keyring.GetToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// Client returns an authenticated task API client.
func (c *Context) Client() (*taskstore.Client, error) {
	token, err := c.ResolveToken()
	if err != nil {
		return nil, err
	}
	return taskstore.New(c.BaseURL(), taskstore.WithToken(token)), nil
}

// AnonymousClient returns a client for the register and login endpoints.
func (c *Context) AnonymousClient() *taskstore.Client {
	return taskstore.New(c.BaseURL())
}

// Clock returns a wall clock in the configured timezone.
func (c *Context) Clock(settings models.Settings) (reminder.SystemClock, error) {
	return reminder.NewSystemClock(settings.Timezone)
}

// NewEngine wires a reminder engine to the presenter and recorder the
// settings ask for. Bell output for the audio cue goes to bell.
func (c *Context) NewEngine(settings models.Settings, bell io.Writer) (*reminder.Engine, *notifier.Presenter) {
	var opts []notifier.PresenterOption
	if settings.NotificationsEnabled {
		opts = append(opts, notifier.WithSender(notifier.NewTray()))
	}
	if settings.SoundEnabled && bell != nil {
		opts = append(opts, notifier.WithCue(notifier.NewCue(bell, settings.CueInterval())))
	}
	presenter := notifier.NewPresenter(opts...)

	engineOpts := []reminder.Option{
		reminder.WithPresenter(presenter),
		reminder.WithRecorder(recorder.New(c.Store)),
	}
	if settings.PersistReminderState {
		engineOpts = append(engineOpts, reminder.WithStatePersistence(c.Store))
	}
	return reminder.NewEngine(engineOpts...), presenter
}
