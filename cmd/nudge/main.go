package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/cli/account"
	"github.com/julianstephens/nudge/internal/cli/responses"
	"github.com/julianstephens/nudge/internal/cli/settings"
	"github.com/julianstephens/nudge/internal/cli/system"
	"github.com/julianstephens/nudge/internal/cli/tasks"
	"github.com/julianstephens/nudge/internal/constants"
	apperrors "github.com/julianstephens/nudge/internal/errors"
	"github.com/julianstephens/nudge/internal/keyring"
	"github.com/julianstephens/nudge/internal/logger"
	"github.com/julianstephens/nudge/internal/storage"
	"github.com/julianstephens/nudge/internal/storage/postgres"
	"github.com/julianstephens/nudge/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use .pgpass or the OS keyring instead." type:"string" default:"${default_config}" env:"NUDGE_CONFIG"`
	APIURL  string `name:"api-url" help:"Task API base URL. Overrides the api_url setting." env:"NUDGE_API_URL"`
	Token   string `help:"Task API token. Overrides the token saved by 'nudge login'." env:"NUDGE_TOKEN"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize nudge storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Watch    system.WatchCmd    `cmd:"" help:"Watch for due tasks in the interactive TUI." default:"1"`
	Run      system.RunCmd      `cmd:"" help:"Run the reminder loop in line mode."`
	Register account.RegisterCmd `cmd:"" help:"Create a task API account and log in."`
	Login    account.LoginCmd    `cmd:"" help:"Log in to the task API."`
	Logout   account.LogoutCmd   `cmd:"" help:"Log out and forget the saved token."`
	Task     struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List all tasks."`
	} `cmd:"" help:"Manage tasks."`
	Respond  responses.RespondCmd `cmd:"" help:"Record a response without a pending reminder."`
	Stats    responses.StatsCmd   `cmd:"" help:"Show monthly completion statistics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the task API."`
	Notify system.NotifyCmd `cmd:"" help:"Send a single desktop notification."`
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// resolveConfig picks the store location. A connection string saved in the
// keyring replaces the default path.
func resolveConfig(config string) (path string, fromKeyring bool) {
	if config != constants.DefaultConfigPath {
		return config, false
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed, using default path", "error", err)
		}
		return config, false
	}
	return connStr, true
}

func newStore(config string) (storage.Provider, error) {
	path, fromKeyring := resolveConfig(config)
	if !postgres.IsConnString(path) {
		return sqlite.NewStore(expandHome(path)), nil
	}

	if _, err := postgres.ValidateConnString(path); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		if !fromKeyring {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line. " +
				"Store it with 'nudge keyring set' or use .pgpass instead")
		}
	}
	return postgres.New(path), nil
}

func logDir(config string) string {
	if postgres.IsConnString(config) {
		return expandHome(filepath.Dir(constants.DefaultConfigPath))
	}
	return filepath.Dir(expandHome(config))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily task reminders with done/not-done tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, "~/.config/nudge/config.json"),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"default_addr":   constants.DefaultServerAddr,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	store, err := newStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		APIURL: CLI.APIURL,
		Token:  CLI.Token,
	}

	// init loads on its own; keyring commands do not touch the store
	command := ctx.Command()
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
