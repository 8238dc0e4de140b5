package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	path := filepath.Join(t.TempDir(), "feedshelf.log")
	closer := Setup(Options{File: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})

	slog.Info("Feed added", "feed_id", 42)
	slog.Debug("Hidden at info level")

	if err := closer.Close(); err != nil {
		t.Fatalf("Expected no error closing log file, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file to exist, got: %v", err)
	}
	if !strings.Contains(string(data), "feed_id=42") {
		t.Errorf("Expected log line with feed_id=42, got: %s", data)
	}
	if strings.Contains(string(data), "Hidden at info level") {
		t.Error("Expected debug message to be filtered out")
	}
}

func TestSetupDebugLevel(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	closer := Setup(Options{Debug: true})
	defer closer.Close()

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug level to be enabled")
	}
}
