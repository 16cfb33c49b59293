package tasks

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/julianstephens/nudge/internal/cli"
	"github.com/julianstephens/nudge/internal/server"
	"github.com/julianstephens/nudge/internal/storage/sqlite"
	"github.com/julianstephens/nudge/internal/taskstore"
)

func setupTestContext(t *testing.T) (*cli.Context, *taskstore.Client) {
	t.Helper()
	tempDir := t.TempDir()

	apiStore := sqlite.NewStore(filepath.Join(tempDir, "api.db"))
	if err := apiStore.Init(); err != nil {
		t.Fatalf("failed to init api store: %v", err)
	}
	t.Cleanup(func() { apiStore.Close() })

	srv := httptest.NewServer(server.NewServer(apiStore, "127.0.0.1:0").Handler())
	t.Cleanup(srv.Close)
	apiURL := srv.URL + "/api"

	token, err := taskstore.New(apiURL).Register(context.Background(), "ada", "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	local := sqlite.NewStore(filepath.Join(tempDir, "nudge.db"))
	if err := local.Init(); err != nil {
		t.Fatalf("failed to init local store: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	ctx := &cli.Context{Store: local, APIURL: apiURL, Token: token}
	return ctx, taskstore.New(apiURL, taskstore.WithToken(token))
}

func strPtr(s string) *string { return &s }

func TestTaskAddCmd_Validate(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		wantErr  bool
	}{
		{"valid", "08:30", false},
		{"single digit hour", "8:30", false},
		{"out of range", "25:00", true},
		{"garbage", "soon", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &TaskAddCmd{Name: "Stretch", Deadline: tt.deadline}
			if err := cmd.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskCommands_Lifecycle(t *testing.T) {
	ctx, client := setupTestContext(t)

	add := &TaskAddCmd{Name: "Stretch", Deadline: "8:05", Category: "health"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	tasks, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Name != "Stretch" || task.DeadlineString() != "08:05" {
		t.Errorf("unexpected task: %+v", task)
	}

	if err := (&TaskListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	edit := &TaskEditCmd{ID: task.ID, Name: strPtr("Stretch more"), Deadline: strPtr("09:00")}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	tasks, _ = client.List(context.Background())
	if tasks[0].Name != "Stretch more" || tasks[0].DeadlineString() != "09:00" {
		t.Errorf("edit not applied: %+v", tasks[0])
	}
	if tasks[0].Category != "health" {
		t.Errorf("category changed to %q", tasks[0].Category)
	}

	clearDeadline := &TaskEditCmd{ID: task.ID, Deadline: strPtr("")}
	if err := clearDeadline.Run(ctx); err != nil {
		t.Fatalf("clearing deadline failed: %v", err)
	}
	tasks, _ = client.List(context.Background())
	if tasks[0].HasDeadline() {
		t.Errorf("deadline should be cleared, got %s", tasks[0].DeadlineString())
	}

	if err := (&TaskDeleteCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	tasks, _ = client.List(context.Background())
	if len(tasks) != 0 {
		t.Errorf("expected no tasks after delete, got %d", len(tasks))
	}

	if err := (&TaskDeleteCmd{ID: task.ID}).Run(ctx); err == nil {
		t.Error("deleting a missing task should fail")
	}
}

func TestTaskEditCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&TaskEditCmd{ID: "x", Name: strPtr("")}).Run(ctx); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := (&TaskEditCmd{ID: "x", Deadline: strPtr("99:99")}).Run(ctx); err == nil {
		t.Error("invalid deadline should be rejected")
	}
	if err := (&TaskEditCmd{ID: "x"}).Run(ctx); err != nil {
		t.Errorf("no-op edit should succeed, got %v", err)
	}
}

func TestTaskListCmd_Unauthorized(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Token = "bogus"

	err := (&TaskListCmd{}).Run(ctx)
	if !errors.Is(err, taskstore.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
