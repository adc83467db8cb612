package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinelog/internal/config"
	"cinelog/internal/logging"
)

func newFileLogger(t *testing.T, opts logging.Options) *slog.Logger {
	t.Helper()
	logger, closer, err := logging.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	return logger
}

func TestNewFromConfigWritesToLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = filepath.Join(t.TempDir(), "logs")

	logger, closer, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })
	logger.Info("catalog loaded", logging.Int("movie_count", 3))

	content, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "catalog loaded") || !strings.Contains(string(content), "movie_count=3") {
		t.Fatalf("unexpected log content: %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, _, err := logging.New(logging.Options{Level: "verbose"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestParseLevelAcceptsWarningAlias(t *testing.T) {
	level, err := logging.ParseLevel("Warning")
	if err != nil || level != slog.LevelWarn {
		t.Fatalf("ParseLevel = %v, %v", level, err)
	}
}

func TestCloserReleasesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "closed.log")
	logger, closer, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("before close")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	logger.Info("after close")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "before close") || strings.Contains(string(content), "after close") {
		t.Fatalf("unexpected log content after close: %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger := newFileLogger(t, logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})

	logger.Info("message without caller")
	logger.Debug("hidden debug line")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if strings.Contains(string(content), "hidden debug line") {
		t.Fatalf("debug line should be filtered at info level: %q", content)
	}
}

func TestConsoleLoggerIncludesComponentAndCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger := newFileLogger(t, logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})

	logging.NewComponentLogger(logger, "catalog").Debug("message with caller", logging.String("title", "Heat"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "DEBUG catalog: message with caller") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", line)
	}
	if !strings.Contains(line, "title=Heat") {
		t.Fatalf("expected attribute, got %q", line)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger := newFileLogger(t, logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})

	ctx := logging.WithRequestID(context.Background(), "req-1")
	ctx = logging.WithAction(ctx, "add")
	logging.WithContext(ctx, logger).Warn("lookup failed", logging.String("title", "Nope"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, content)
	}
	if payload["level"] != "warn" || payload["msg"] != "lookup failed" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload[logging.FieldRequestID] != "req-1" || payload[logging.FieldAction] != "add" {
		t.Fatalf("expected context fields, got %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger := newFileLogger(t, logging.Options{Format: "console", OutputPaths: []string{logPath}})
	logging.WarnWithContext(logger, "duplicate title", "catalog_duplicate")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{"event_type=catalog_duplicate", "error_hint=", "impact="} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("ignored")
}

func TestConsoleLoggerTagsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandler(&buf, slog.LevelInfo))

	ctx := logging.WithRequestID(context.Background(), "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	ctx = logging.WithAction(ctx, "delete")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "catalog")).
		WithGroup("movie").
		Info("movie deleted", logging.String("title", "The Thing"), logging.Int("year", 1982))

	line := buf.String()
	for _, want := range []string{
		"INFO  catalog: movie deleted [delete/1b4e28ba]",
		`movie.title="The Thing"`,
		"movie.year=1982",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "request_id=") || strings.Contains(line, "component=") {
		t.Fatalf("tag fields should not repeat as attributes: %q", line)
	}
}
