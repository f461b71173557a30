package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Backend names accepted by [store] backend.
const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Paths contains directories owned by tvlog.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Store selects the workbook implementation.
type Store struct {
	Backend string `toml:"backend"`
}

// SQLite configures the local workbook file.
type SQLite struct {
	Path string `toml:"path"`
}

// Sheets contains configuration for the Google Sheets workbook.
type Sheets struct {
	SpreadsheetID     string `toml:"spreadsheet_id"`
	CredentialsFile   string `toml:"credentials_file"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// Cache controls how long a loaded library is reused between reads.
type Cache struct {
	TTLSeconds      int `toml:"ttl_seconds"`
	ErrorTTLSeconds int `toml:"error_ttl_seconds"`
}

// Loader controls the show loader worker pool.
type Loader struct {
	Concurrency int `toml:"concurrency"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format          string            `toml:"format"`
	Level           string            `toml:"level"`
	File            bool              `toml:"file"`
	ComponentLevels map[string]string `toml:"component_levels"`
}

// Config encapsulates all configuration values for tvlog.
//
// Configuration sections by subsystem:
//   - Paths: state directory for the lock file and logs
//   - Store: which workbook backend to use
//   - SQLite: local workbook location
//   - Sheets: Google Sheets spreadsheet, credentials and request pacing
//   - Cache: load cache lifetimes
//   - Loader: parallel sheet loading
//   - Logging: log format, level and file output
type Config struct {
	Paths   Paths   `toml:"paths"`
	Store   Store   `toml:"store"`
	SQLite  SQLite  `toml:"sqlite"`
	Sheets  Sheets  `toml:"sheets"`
	Cache   Cache   `toml:"cache"`
	Loader  Loader  `toml:"loader"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strings.TrimSpace(strict.String()))
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tvlog.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the parent of the SQLite
// workbook when that backend is selected.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	if c.Store.Backend == BackendSQLite && strings.TrimSpace(c.SQLite.Path) != "" {
		dir := filepath.Dir(c.SQLite.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create workbook directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the single-writer lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "tvlog.lock")
}

// LogPath returns the file that receives logs when [logging] file is enabled.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "tvlog.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
