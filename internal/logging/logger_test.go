package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndCategory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithCategory(logging.WithRunID(context.Background(), "run-123"), "wildlife")
	component := logging.NewComponentLogger(logger, "pipeline")
	logging.WithContext(ctx, component).Info("optimized", logging.String("file", "Red Panda.jpeg"), logging.Int("width", 400))

	content := readLog(t, logPath)
	for _, want := range []string{"INFO [pipeline] wildlife – optimized", `file="Red Panda.jpeg"`, "width=400"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "run-123") {
		t.Fatalf("expected run id hidden at info level, got %q", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatalf("expected no ANSI colour in file output, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerDebugIncludesRunIDAndSource(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-456")
	logging.WithContext(ctx, logger).Debug("planning")

	content := readLog(t, logPath)
	if !strings.Contains(content, "run_id=run-456") {
		t.Fatalf("expected run id at debug level, got %q", content)
	}
	if !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information at debug level, got %q", content)
	}
}

func TestConsoleLoggerForcedColor(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "color.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}, Color: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("careful")

	if content := readLog(t, logPath); !strings.Contains(content, "\x1b[33mWARN\x1b[0m") {
		t.Fatalf("expected coloured warn label, got %q", content)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.ErrorWithContext(logger, "transcode failed", "transcode_failed", logging.Error(errors.New("bad header")))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	if entry["level"] != "error" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry[logging.FieldEventType] != "transcode_failed" {
		t.Fatalf("expected event type, got %v", entry[logging.FieldEventType])
	}
	if entry[logging.FieldErrorHint] == "" || entry[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint, got %v", entry)
	}
	if entry["error"] != "bad header" {
		t.Fatalf("expected error text, got %v", entry["error"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesStateLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	if content := readLog(t, cfg.LogPath()); !strings.Contains(content, "hello from config") {
		t.Fatalf("expected message in state log, got %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.WarnWithContext(nil, "ignored", "noop")
}
