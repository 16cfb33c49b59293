package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(stderrors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q", got)
	}
	if got := Formatf("task %s not found", "a"); got != "Error: task a not found" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", fmt.Errorf("list tasks: %w", ErrTransport), true},
		{"permission", fmt.Errorf("%w: tray not running", ErrPermissionDenied), true},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedState), true},
		{"other", stderrors.New("disk full"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recoverable(tt.err); got != tt.want {
				t.Errorf("Recoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
