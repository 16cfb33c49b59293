package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/nudge/internal/logger"
)

var (
	// ErrTransport is returned when the task API is unreachable or answers with a non-2xx status
	ErrTransport = stderrors.New("task store transport error")
	// ErrPermissionDenied is returned when desktop notifications cannot be shown
	ErrPermissionDenied = stderrors.New("notification permission denied")
	// ErrMalformedState is returned when persisted state cannot be decoded
	ErrMalformedState = stderrors.New("malformed persisted state")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Recoverable reports whether err belongs to the taxonomy the reminder loop
// degrades on instead of stopping.
func Recoverable(err error) bool {
	return stderrors.Is(err, ErrTransport) ||
		stderrors.Is(err, ErrPermissionDenied) ||
		stderrors.Is(err, ErrMalformedState)
}
