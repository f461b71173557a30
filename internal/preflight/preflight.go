package preflight

import (
	"context"
	"path/filepath"

	"tvlog/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Pinger is a workbook that can verify it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes every check that applies to cfg. book may be nil when the
// workbook could not be opened; openErr then explains why.
func RunAll(ctx context.Context, cfg *config.Config, book Pinger, openErr error) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("State directory", cfg.Paths.StateDir)}

	switch cfg.Store.Backend {
	case config.BackendSheets:
		results = append(results, CheckSpreadsheetID(cfg.Sheets.SpreadsheetID))
		results = append(results, CheckFileReadable("Credentials file", cfg.Sheets.CredentialsFile))
	default:
		results = append(results, CheckDirectoryAccess("Workbook directory", filepath.Dir(cfg.SQLite.Path)))
	}

	results = append(results, CheckWorkbook(ctx, cfg.Store.Backend, book, openErr))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
