package account

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/keyring"
	"github.com/julianstephens/nudge/internal/server"
	"github.com/julianstephens/nudge/internal/storage/sqlite"
	"github.com/julianstephens/nudge/internal/taskstore"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	tempDir := t.TempDir()

	apiStore := sqlite.NewStore(filepath.Join(tempDir, "api.db"))
	if err := apiStore.Init(); err != nil {
		t.Fatalf("failed to init api store: %v", err)
	}
	t.Cleanup(func() { apiStore.Close() })

	srv := httptest.NewServer(server.NewServer(apiStore, "127.0.0.1:0").Handler())
	t.Cleanup(srv.Close)

	local := sqlite.NewStore(filepath.Join(tempDir, "nudge.db"))
	if err := local.Init(); err != nil {
		t.Fatalf("failed to init local store: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	return &cli.Context{Store: local, APIURL: srv.URL + "/api"}
}

func noPrompt(t *testing.T) {
	t.Helper()
	orig := promptFunc
	promptFunc = func(*huh.Form) error {
		t.Error("unexpected prompt")
		return nil
	}
	t.Cleanup(func() { promptFunc = orig })
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := setupTestContext(t)
	noPrompt(t)

	reg := &RegisterCmd{Username: "ada", Email: "ada@example.com", Password: "secret"}
	if err := reg.Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := keyring.GetToken()
	if err != nil || token == "" {
		t.Fatalf("token not stored after register: %q, %v", token, err)
	}

	login := &LoginCmd{Email: "ada@example.com", Password: "secret"}
	if err := login.Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	loginToken, _ := keyring.GetToken()
	if loginToken == token {
		t.Error("login should issue a new session token")
	}

	client, err := ctx.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}
	if _, err := client.List(context.Background()); err != nil {
		t.Errorf("stored token should authorize: %v", err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := keyring.GetToken(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("token should be removed, got %v", err)
	}
	if _, err := ctx.Client(); !errors.Is(err, cli.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	stale := taskstore.New(ctx.APIURL, taskstore.WithToken(loginToken))
	if _, err := stale.List(context.Background()); !errors.Is(err, taskstore.ErrUnauthorized) {
		t.Errorf("logged out token should be rejected, got %v", err)
	}
}

func TestLoginCmd_WrongPassword(t *testing.T) {
	ctx := setupTestContext(t)
	noPrompt(t)

	if err := (&RegisterCmd{Username: "ada", Email: "ada@example.com", Password: "secret"}).Run(ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := keyring.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	err := (&LoginCmd{Email: "ada@example.com", Password: "wrong"}).Run(ctx)
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if _, err := keyring.GetToken(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("failed login must not store a token, got %v", err)
	}
}

func TestLoginCmd_PromptsForMissingFields(t *testing.T) {
	ctx := setupTestContext(t)

	prompted := false
	orig := promptFunc
	promptFunc = func(*huh.Form) error {
		prompted = true
		return huh.ErrUserAborted
	}
	t.Cleanup(func() { promptFunc = orig })

	err := (&LoginCmd{Email: "ada@example.com"}).Run(ctx)
	if !prompted {
		t.Error("expected a prompt for the missing password")
	}
	if err == nil || err.Error() != "aborted" {
		t.Errorf("expected aborted error, got %v", err)
	}
}

func TestLogoutCmd_NotLoggedIn(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Errorf("logout without a token should succeed, got %v", err)
	}
}
