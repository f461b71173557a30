package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStore()
	if err := c.normalizeSQLite(); err != nil {
		return err
	}
	if err := c.normalizeSheets(); err != nil {
		return err
	}
	c.normalizeLoader()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = defaultBackend
	}
}

func (c *Config) normalizeSQLite() error {
	path := strings.TrimSpace(c.SQLite.Path)
	if path == "" {
		c.SQLite.Path = filepath.Join(c.Paths.StateDir, defaultWorkbookFile)
		return nil
	}
	var err error
	if c.SQLite.Path, err = expandPath(path); err != nil {
		return fmt.Errorf("sqlite.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSheets() error {
	c.Sheets.SpreadsheetID = strings.TrimSpace(c.Sheets.SpreadsheetID)
	if c.Sheets.SpreadsheetID == "" {
		if value, ok := os.LookupEnv(spreadsheetIDEnv); ok {
			c.Sheets.SpreadsheetID = strings.TrimSpace(value)
		}
	}
	c.Sheets.CredentialsFile = strings.TrimSpace(c.Sheets.CredentialsFile)
	if c.Sheets.CredentialsFile == "" {
		if value, ok := os.LookupEnv(credentialsEnv); ok {
			c.Sheets.CredentialsFile = strings.TrimSpace(value)
		}
	}
	if c.Sheets.CredentialsFile != "" {
		var err error
		if c.Sheets.CredentialsFile, err = expandPath(c.Sheets.CredentialsFile); err != nil {
			return fmt.Errorf("sheets.credentials_file: %w", err)
		}
	}
	if c.Sheets.RequestsPerMinute == 0 {
		c.Sheets.RequestsPerMinute = defaultSheetsRequestsPerMin
	}
	return nil
}

func (c *Config) normalizeLoader() {
	if c.Loader.Concurrency == 0 {
		c.Loader.Concurrency = defaultLoaderConcurrency
	}
	if c.Loader.Concurrency > maxLoaderConcurrency {
		c.Loader.Concurrency = maxLoaderConcurrency
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if len(c.Logging.ComponentLevels) == 0 {
		c.Logging.ComponentLevels = nil
		return
	}
	levels := make(map[string]string, len(c.Logging.ComponentLevels))
	for component, level := range c.Logging.ComponentLevels {
		component = strings.ToLower(strings.TrimSpace(component))
		if component == "" {
			continue
		}
		levels[component] = strings.ToLower(strings.TrimSpace(level))
	}
	c.Logging.ComponentLevels = levels
}
