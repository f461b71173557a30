package config

const (
	defaultConfigPath           = "~/.config/tvlog/config.toml"
	defaultStateDir             = "~/.local/share/tvlog"
	defaultWorkbookFile         = "workbook.db"
	defaultBackend              = BackendSQLite
	defaultSheetsRequestsPerMin = 60
	defaultCacheTTLSeconds      = 300
	defaultCacheErrorTTLSeconds = 10
	defaultLoaderConcurrency    = 4
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	maxLoaderConcurrency        = 32
	spreadsheetIDEnv            = "TVLOG_SPREADSHEET_ID"
	credentialsEnv              = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Default returns a Config populated with repository defaults. The SQLite path
// is left empty and derived from the state directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Store: Store{
			Backend: defaultBackend,
		},
		Sheets: Sheets{
			RequestsPerMinute: defaultSheetsRequestsPerMin,
		},
		Cache: Cache{
			TTLSeconds:      defaultCacheTTLSeconds,
			ErrorTTLSeconds: defaultCacheErrorTTLSeconds,
		},
		Loader: Loader{
			Concurrency: defaultLoaderConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
