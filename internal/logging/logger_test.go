package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvlog/internal/config"
	"tvlog/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesStateLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Logging.File = true

	logger, err := logging.NewFromConfig(&cfg, "session-1")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("loaded shows", logging.Int("shows", 2))

	out := readLog(t, filepath.Join(cfg.Paths.StateDir, "tvlog.log"))
	if !strings.Contains(out, "loaded shows") {
		t.Fatalf("expected message in log file, got %q", out)
	}
}

func TestConsoleLoggerFormatsSubject(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "tracker")
	logger.Info("episode updated",
		logging.Show("Breaking Bad"),
		logging.Position(1),
		logging.Row(3),
	)

	out := readLog(t, logPath)
	if !strings.Contains(out, "INFO [tracker] Breaking Bad #1 – episode updated") {
		t.Fatalf("unexpected header line: %q", out)
	}
	if !strings.Contains(out, "    - Row: 3") {
		t.Fatalf("expected row field, got %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("header read", logging.String("sheet", "Notes"))

	out := readLog(t, logPath)
	if !strings.Contains(out, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", out)
	}
	if !strings.Contains(out, "    sheet: Notes") {
		t.Fatalf("expected raw debug key, got %q", out)
	}
}

func TestJSONLoggerIncludesSessionID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}, SessionID: "abc"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")

	out := readLog(t, logPath)
	for _, want := range []string{`"session_id":"abc"`, `"level":"info"`, `"ts":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %q", want, out)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestComponentLevelOverride(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "levels.log")
	logger, err := logging.New(logging.Options{
		Format:          "console",
		Level:           "info",
		OutputPaths:     []string{logPath},
		ComponentLevels: map[string]string{"loader": "debug", "tracker": "error"},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "loader").Debug("loader debug")
	logging.NewComponentLogger(logger, "tracker").Info("tracker info")
	logging.NewComponentLogger(logger, "api").Debug("api debug")
	logging.NewComponentLogger(logger, "api").Info("api info")

	out := readLog(t, logPath)
	if !strings.Contains(out, "loader debug") {
		t.Fatalf("expected loader debug line, got %q", out)
	}
	if strings.Contains(out, "tracker info") {
		t.Fatalf("tracker info should be filtered, got %q", out)
	}
	if strings.Contains(out, "api debug") {
		t.Fatalf("api debug should be filtered at base level, got %q", out)
	}
	if !strings.Contains(out, "api info") {
		t.Fatalf("expected api info line, got %q", out)
	}
}

func TestWithContextAddsShowAndRequest(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithShow(context.Background(), "Lost")
	ctx = logging.WithRequestID(ctx, "req-9")
	logging.WithContext(ctx, logger).Info("edit")

	out := readLog(t, logPath)
	if !strings.Contains(out, `"show":"Lost"`) || !strings.Contains(out, `"request_id":"req-9"`) {
		t.Fatalf("expected context fields, got %q", out)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "sheet skipped", "sheet_load_failed")

	out := readLog(t, logPath)
	for _, want := range []string{`"event_type":"sheet_load_failed"`, `"error_hint"`, `"impact"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %q", want, out)
		}
	}
}

func TestDomainAttrsUseRegisteredKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "attrs.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "field not written", "write_failed",
		logging.Show("Lost"),
		logging.Position(2),
		logging.Row(4),
		logging.Field("Watched"),
		logging.Hint("retry the edit"),
	)

	out := readLog(t, logPath)
	for _, want := range []string{
		`"show":"Lost"`, `"position":2`, `"row":4`, `"field":"Watched"`,
		`"error_hint":"retry the edit"`, `"event_type":"write_failed"`, `"impact":`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %q", want, out)
		}
	}
	if strings.Count(out, `"error_hint"`) != 1 {
		t.Fatalf("explicit hint must replace the default, got %q", out)
	}
}
