package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tvlog/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the tvlog configuration",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Long: `Write a commented sample configuration.

The sample selects the local sqlite workbook, which needs no further setup.
To track shows in a Google spreadsheet set [store] backend = "sheets" and fill
in [sheets] spreadsheet_id and credentials_file (or export
TVLOG_SPREADSHEET_ID and GOOGLE_APPLICATION_CREDENTIALS).`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveConfigTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("%s already exists (pass --overwrite to replace it)", target)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("check %s: %w", target, err)
				}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Episodes are kept in a local sqlite workbook; add shows with 'tvlog import <csv>'.")
			fmt.Fprintln(out, `For Google Sheets set backend = "sheets" plus spreadsheet_id and credentials_file, then run 'tvlog doctor'.`)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the file (default ~/.config/tvlog/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func resolveConfigTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// configSummary is the validated configuration as reported by validate.
type configSummary struct {
	Path          string `json:"path"`
	FileFound     bool   `json:"file_found"`
	Backend       string `json:"backend"`
	Workbook      string `json:"workbook,omitempty"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
	Credentials   string `json:"credentials_file,omitempty"`
	RequestsPM    int    `json:"requests_per_minute,omitempty"`
	StateDir      string `json:"state_dir"`
	CacheTTL      int    `json:"cache_ttl_seconds"`
	Concurrency   int    `json:"loader_concurrency"`
	LogFormat     string `json:"log_format"`
	LogLevel      string `json:"log_level"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and report the effective store settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			summary := configSummary{
				Path:        path,
				FileFound:   exists,
				Backend:     cfg.Store.Backend,
				StateDir:    cfg.Paths.StateDir,
				CacheTTL:    cfg.Cache.TTLSeconds,
				Concurrency: cfg.Loader.Concurrency,
				LogFormat:   cfg.Logging.Format,
				LogLevel:    cfg.Logging.Level,
			}
			if cfg.Store.Backend == config.BackendSheets {
				summary.SpreadsheetID = cfg.Sheets.SpreadsheetID
				summary.Credentials = cfg.Sheets.CredentialsFile
				summary.RequestsPM = cfg.Sheets.RequestsPerMinute
			} else {
				summary.Workbook = cfg.SQLite.Path
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}
			renderConfigSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func renderConfigSummary(out io.Writer, s configSummary) {
	if s.FileFound {
		fmt.Fprintf(out, "Config file:   %s\n", s.Path)
	} else {
		fmt.Fprintf(out, "Config file:   %s (not found, using defaults)\n", s.Path)
	}
	fmt.Fprintf(out, "Store backend: %s\n", s.Backend)
	if s.Backend == config.BackendSheets {
		fmt.Fprintf(out, "Spreadsheet:   %s\n", s.SpreadsheetID)
		fmt.Fprintf(out, "Credentials:   %s\n", s.Credentials)
		fmt.Fprintf(out, "Rate limit:    %d requests/minute\n", s.RequestsPM)
	} else {
		fmt.Fprintf(out, "Workbook:      %s\n", s.Workbook)
	}
	fmt.Fprintf(out, "State dir:     %s\n", s.StateDir)
	if s.CacheTTL > 0 {
		fmt.Fprintf(out, "Load cache:    %ds\n", s.CacheTTL)
	} else {
		fmt.Fprintln(out, "Load cache:    disabled")
	}
	fmt.Fprintf(out, "Loader:        %d sheets in parallel\n", s.Concurrency)
	fmt.Fprintf(out, "Logging:       %s, %s\n", s.LogFormat, s.LogLevel)
	fmt.Fprintln(out, "Configuration valid")
}
