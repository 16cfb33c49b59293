package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{ConfigDir: configDir})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Info("reminder fired", "task", "stretch")
	Warn("task fetch failed", "error", "connection refused")

	if _, err := os.Stat(filepath.Join(logDir, "nudge.log")); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{Debug: true, ConfigDir: filepath.Join(t.TempDir(), "config")})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel().String() != "debug" {
		t.Errorf("level = %s, want debug", Logger.GetLevel())
	}
	Debug("Test debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
