package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tvlog/internal/logging"
	"tvlog/internal/store"
	"tvlog/internal/textutil"
)

// ErrStoreUnavailable marks a load where the workbook could not be listed.
var ErrStoreUnavailable = errors.New("store unavailable")

// DefaultConcurrency is the number of sheets loaded in parallel when the
// caller does not choose.
const DefaultConcurrency = 4

// Loader reads every show from a workbook.
type Loader struct {
	book        store.Workbook
	concurrency int
	logger      *slog.Logger
}

// NewLoader constructs a loader. concurrency below 1 uses DefaultConcurrency.
func NewLoader(book store.Workbook, concurrency int, logger *slog.Logger) *Loader {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		book:        book,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(logger, "loader"),
	}
}

type sheetResult struct {
	show    *Show
	skipped bool
	err     error
}

// Load reads all sheets. It never fails: an unreachable workbook yields an
// empty library and a warning wrapping ErrStoreUnavailable, and per-sheet
// failures become warnings while the remaining sheets load.
func (l *Loader) Load(ctx context.Context) (*Library, []Warning) {
	started := time.Now()
	lib := NewLibrary()

	sheets, err := l.book.Sheets(ctx)
	if err != nil {
		warning := Warning{Err: fmt.Errorf("%w: list sheets: %w", ErrStoreUnavailable, err)}
		logging.WarnWithContext(l.logger, "workbook unavailable", "store_unavailable",
			logging.Error(err),
			logging.Hint("check the store configuration with 'tvlog doctor'"),
			logging.Impact("no shows loaded"),
		)
		return lib, []Warning{warning}
	}

	results := make([]sheetResult, len(sheets))
	sem := make(chan struct{}, l.concurrency)
	var wg sync.WaitGroup
	for i, sheet := range sheets {
		wg.Add(1)
		go func(index int, sheet store.Sheet) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[index] = sheetResult{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()
			results[index] = l.loadSheet(ctx, sheet)
		}(i, sheet)
	}
	wg.Wait()

	var warnings []Warning
	for i, res := range results {
		name := sheets[i].Name()
		switch {
		case res.err != nil:
			warnings = append(warnings, Warning{Sheet: name, Err: res.err})
			logging.WarnWithContext(l.logger, "sheet skipped", "sheet_load_failed",
				logging.Show(name),
				logging.Error(res.err),
				logging.Impact("show left out of this load"),
			)
		case res.skipped:
		case !lib.add(res.show):
			err := fmt.Errorf("duplicate sheet name %q", name)
			warnings = append(warnings, Warning{Sheet: name, Err: err})
			logging.WarnWithContext(l.logger, "sheet skipped", "sheet_duplicate",
				logging.Show(name),
				logging.Hint("rename one of the worksheets"),
			)
		}
	}

	l.logger.Debug("library loaded",
		logging.Int("sheets", len(sheets)),
		logging.Int("shows", lib.Len()),
		logging.Int("warnings", len(warnings)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return lib, warnings
}

func (l *Loader) loadSheet(ctx context.Context, sheet store.Sheet) sheetResult {
	name := sheet.Name()
	header, err := l.book.HeaderRow(ctx, sheet)
	if err != nil {
		return sheetResult{err: fmt.Errorf("read header: %w", err)}
	}
	if len(header) == 0 || !containsColumn(header, ColShowName) {
		l.logger.Debug("sheet skipped", logging.Show(name), logging.Reason("no Show Name header"))
		return sheetResult{skipped: true}
	}

	raw, err := l.book.Records(ctx, sheet)
	if err != nil {
		return sheetResult{err: fmt.Errorf("read records: %w", err)}
	}
	if len(raw) == 0 {
		l.logger.Debug("sheet skipped", logging.Show(name), logging.Reason("no records"))
		return sheetResult{skipped: true}
	}

	table := buildTable(header, raw)
	return sheetResult{show: &Show{
		Name:     name,
		Sheet:    sheet,
		Table:    table,
		Metadata: ComputeMetadata(name, table),
	}}
}

// buildTable copies raw records into a table. Tracking columns whose header
// differs from the canonical name only by case, spacing or Unicode form are
// re-keyed to the canonical name, resolved the same way the tracker resolves
// them on write. Any tracking column still missing is added with its default.
func buildTable(header []string, raw []store.Record) Table {
	columns := make([]string, 0, len(header)+len(TrackingColumns))
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		columns = append(columns, name)
	}

	// renamed maps a header as written to its canonical tracking name.
	renamed := make(map[string]string)
	var missing []TrackingColumn
	for _, tc := range TrackingColumns {
		if _, ok := seen[tc.Name]; ok {
			continue
		}
		if alias := foldedColumn(columns, tc.Name, renamed); alias != "" {
			renamed[alias] = tc.Name
			continue
		}
		missing = append(missing, tc)
	}
	for i, name := range columns {
		if canonical, ok := renamed[name]; ok {
			columns[i] = canonical
		}
	}
	for _, tc := range missing {
		columns = append(columns, tc.Name)
	}

	records := make([]Record, len(raw))
	for i, rec := range raw {
		fields := make(map[string]any, len(columns))
		for k, v := range rec {
			if canonical, ok := renamed[k]; ok {
				k = canonical
			}
			fields[k] = v
		}
		for _, tc := range missing {
			fields[tc.Name] = tc.Default
		}
		records[i] = Record{Position: i, Fields: fields}
	}
	return Table{Columns: columns, Records: records}
}

// foldedColumn returns the first header equal to name after folding that has
// not already been claimed by another tracking column.
func foldedColumn(columns []string, name string, claimed map[string]string) string {
	folded := textutil.FoldHeader(name)
	for _, column := range columns {
		if _, taken := claimed[column]; taken {
			continue
		}
		if textutil.FoldHeader(column) == folded {
			return column
		}
	}
	return ""
}

func containsColumn(header []string, column string) bool {
	for _, name := range header {
		if name == column {
			return true
		}
	}
	return false
}
