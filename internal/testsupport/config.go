package testsupport

import (
	"path/filepath"
	"testing"

	"tvlog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It uses the SQLite backend with a workbook under the temp dir and applies
// any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.SQLite.Path = filepath.Join(base, "workbook.db")
	cfgVal.Loader.Concurrency = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCacheTTL overrides the load cache lifetime in seconds.
func WithCacheTTL(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.TTLSeconds = seconds
	}
}

// WithLogLevel sets the configured log level.
func WithLogLevel(level string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Level = level
	}
}

// WithSheetsBackend switches the config to the Google Sheets backend with a
// credentials path under the temp dir. The file is not created.
func WithSheetsBackend(spreadsheetID string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Backend = config.BackendSheets
		b.cfg.Sheets.SpreadsheetID = spreadsheetID
		b.cfg.Sheets.CredentialsFile = filepath.Join(b.baseDir, "credentials.json")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
