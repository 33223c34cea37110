package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	want := filepath.Join(configDir, "logs", "tally.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Info("below the default level")
	Warn("counter reload failed", "id", "c1")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if strings.Contains(string(data), "below the default level") {
		t.Error("info messages should be filtered at the default warn level")
	}
	if !strings.Contains(string(data), "counter reload failed") {
		t.Errorf("warn message missing from log file: %q", data)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Init failed in debug mode: %v", err)
	}

	Debug("debug enabled")
	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "debug enabled") {
		t.Error("debug messages should be written in debug mode")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Debug("no logger")
	Info("no logger")
	Warn("no logger")
	Error("no logger")
}
