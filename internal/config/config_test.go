package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tvlog/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("TVLOG_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "tvlog")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.SQLite.Path != filepath.Join(wantState, "workbook.db") {
		t.Fatalf("unexpected sqlite path: %q", cfg.SQLite.Path)
	}
	if cfg.Store.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend by default, got %q", cfg.Store.Backend)
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Fatalf("expected 5 minute cache ttl, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Loader.Concurrency != 4 {
		t.Fatalf("expected loader concurrency 4, got %d", cfg.Loader.Concurrency)
	}
	if cfg.Sheets.RequestsPerMinute != 60 {
		t.Fatalf("expected 60 requests per minute, got %d", cfg.Sheets.RequestsPerMinute)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LockPath() != filepath.Join(wantState, "tvlog.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
state_dir = "~/tv-state"

[store]
backend = "SHEETS"

[sheets]
spreadsheet_id = "  abc123  "
credentials_file = "~/keys/sa.json"
requests_per_minute = 30

[cache]
ttl_seconds = 0

[loader]
concurrency = 100

[logging]
format = "JSON"
level = "Debug"

[logging.component_levels]
Loader = "warn"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, "tv-state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Store.Backend != config.BackendSheets {
		t.Fatalf("expected backend to be lowercased, got %q", cfg.Store.Backend)
	}
	if cfg.Sheets.SpreadsheetID != "abc123" {
		t.Fatalf("expected trimmed spreadsheet id, got %q", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Sheets.CredentialsFile != filepath.Join(tempHome, "keys", "sa.json") {
		t.Fatalf("unexpected credentials file: %q", cfg.Sheets.CredentialsFile)
	}
	if cfg.Sheets.RequestsPerMinute != 30 {
		t.Fatalf("unexpected requests per minute: %d", cfg.Sheets.RequestsPerMinute)
	}
	if cfg.Cache.TTLSeconds != 0 {
		t.Fatalf("expected caching disabled, got ttl %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Loader.Concurrency != 32 {
		t.Fatalf("expected concurrency to be capped at 32, got %d", cfg.Loader.Concurrency)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected canonical logging values, got %+v", cfg.Logging)
	}
	if cfg.Logging.ComponentLevels["loader"] != "warn" {
		t.Fatalf("expected normalized component level, got %v", cfg.Logging.ComponentLevels)
	}
}

func TestSheetsBackendFallsBackToEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	credentials := filepath.Join(t.TempDir(), "sa.json")
	t.Setenv("TVLOG_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", credentials)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[store]\nbackend = \"sheets\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Sheets.SpreadsheetID != "from-env" {
		t.Fatalf("expected spreadsheet id from env, got %q", cfg.Sheets.SpreadsheetID)
	}
	if cfg.Sheets.CredentialsFile != credentials {
		t.Fatalf("expected credentials from env, got %q", cfg.Sheets.CredentialsFile)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.Store.Backend = "excel" },
			wantErr: "store.backend",
		},
		{
			name: "sheets without spreadsheet",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendSheets
				c.Sheets.CredentialsFile = "/tmp/sa.json"
			},
			wantErr: "sheets.spreadsheet_id",
		},
		{
			name: "sheets without credentials",
			mutate: func(c *config.Config) {
				c.Store.Backend = config.BackendSheets
				c.Sheets.SpreadsheetID = "abc"
			},
			wantErr: "sheets.credentials_file",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *config.Config) { c.Cache.TTLSeconds = -1 },
			wantErr: "cache.ttl_seconds",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *config.Config) { c.Loader.Concurrency = 0 },
			wantErr: "loader.concurrency",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "bad component level",
			mutate:  func(c *config.Config) { c.Logging.ComponentLevels = map[string]string{"loader": "loud"} },
			wantErr: "logging.component_levels.loader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.SQLite.Path = "/tmp/workbook.db"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TVLOG_SPREADSHEET_ID", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Store.Backend != config.BackendSQLite {
		t.Fatalf("sample should default to sqlite, got %q", decoded.Store.Backend)
	}

	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("Load(sample) = exists %v, err %v", exists, err)
	}
}

func TestEnsureDirectoriesCreatesStateAndWorkbookParent(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.SQLite.Path = filepath.Join(base, "books", "workbook.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, filepath.Dir(cfg.SQLite.Path)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
