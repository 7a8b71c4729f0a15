package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_StockScene(t *testing.T) {
	world, logger, closeLog, err := setup("", "")
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	defer closeLog()

	if len(world.Bodies) == 0 || logger == nil {
		t.Errorf("setup() = %d bodies, logger %v", len(world.Bodies), logger)
	}
}

func TestSetup_BadSceneClosesLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "boxview.log")

	world, _, closeLog, err := setup("missing.yaml", logPath)
	if err == nil {
		t.Fatal("setup() should fail on a missing scene")
	}
	if world != nil || closeLog != nil {
		t.Error("setup() should not hand out anything on failure")
	}

	// The failure is in the log, which was closed and can be removed
	data, readErr := os.ReadFile(logPath)
	if readErr != nil {
		t.Fatalf("reading log: %v", readErr)
	}
	if !strings.Contains(string(data), "loading scene") {
		t.Errorf("log = %q, want the scene error", data)
	}
	if err := os.Remove(logPath); err != nil {
		t.Errorf("removing log: %v", err)
	}
}

func TestSetup_LogFileError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "missing-dir", "boxview.log")

	if _, _, _, err := setup("", logPath); err == nil || !strings.Contains(err.Error(), "creating log file") {
		t.Errorf("setup() error = %v, want a log file error", err)
	}
}
