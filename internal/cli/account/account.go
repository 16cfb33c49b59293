package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/keyring"
	"github.com/julianstephens/nudge/internal/logger"
)

// promptFunc runs an interactive form; tests replace it.
var promptFunc = func(form *huh.Form) error {
	return form.Run()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func credentialFields(email, password *string) []huh.Field {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(required("email")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("password")))
	}
	return fields
}

func prompt(fields []huh.Field) error {
	if len(fields) == 0 {
		return nil
	}
	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
	if err := promptFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("aborted")
		}
		return err
	}
	return nil
}

func storeToken(token string) error {
	if err := keyring.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

type RegisterCmd struct {
	Username string `short:"u" help:"Account username."`
	Email    string `short:"e" help:"Account email."`
	Password string `short:"p" help:"Account password. Prompted for when omitted." env:"NUDGE_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	var fields []huh.Field
	if c.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&c.Username).
			Validate(required("username")))
	}
	fields = append(fields, credentialFields(&c.Email, &c.Password)...)
	if err := prompt(fields); err != nil {
		return err
	}

	token, err := ctx.AnonymousClient().Register(context.Background(), c.Username, c.Email, c.Password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := storeToken(token); err != nil {
		return err
	}

	logger.Info("Registered account", "email", c.Email)
	fmt.Printf("✓ Registered %s and logged in\n", c.Email)
	return nil
}

type LoginCmd struct {
	Email    string `short:"e" help:"Account email."`
	Password string `short:"p" help:"Account password. Prompted for when omitted." env:"NUDGE_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := prompt(credentialFields(&c.Email, &c.Password)); err != nil {
		return err
	}

	token, err := ctx.AnonymousClient().Login(context.Background(), c.Email, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := storeToken(token); err != nil {
		return err
	}

	logger.Info("Logged in", "email", c.Email)
	fmt.Printf("✓ Logged in as %s\n", c.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Client()
	if err != nil {
		if errors.Is(err, cli.ErrNotLoggedIn) {
			fmt.Println("Not logged in.")
			return nil
		}
		return err
	}

	// the local token is dropped even if the server is unreachable
	if err := client.Logout(context.Background()); err != nil {
		logger.Warn("Server logout failed", "error", err)
	}
	if err := keyring.DeleteToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	fmt.Println("✓ Logged out")
	return nil
}
