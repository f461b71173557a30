package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tvlog/internal/config"
	"tvlog/internal/logging"
	"tvlog/internal/store"
	"tvlog/internal/store/gsheets"
	"tvlog/internal/store/sqlitebook"
)

// Workbook is a store.Workbook that can be checked and released.
type Workbook interface {
	store.Workbook
	Ping(ctx context.Context) error
	io.Closer
}

// OpenWorkbook opens the backend selected in cfg.
func OpenWorkbook(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Workbook, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	switch cfg.Store.Backend {
	case config.BackendSheets:
		book, err := gsheets.New(ctx, gsheets.Options{
			SpreadsheetID:     cfg.Sheets.SpreadsheetID,
			CredentialsFile:   cfg.Sheets.CredentialsFile,
			RequestsPerMinute: cfg.Sheets.RequestsPerMinute,
			Logger:            logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open google sheets workbook: %w", err)
		}
		return sheetsWorkbook{book}, nil
	case config.BackendSQLite, "":
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, err
		}
		book, err := sqlitebook.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite workbook: %w", err)
		}
		return book, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// sheetsWorkbook gives the remote book a no-op Close; the API client holds
// no resources that need releasing.
type sheetsWorkbook struct {
	*gsheets.Book
}

func (sheetsWorkbook) Close() error { return nil }
