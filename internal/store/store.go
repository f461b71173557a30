// Package store defines the spreadsheet-shaped backing store the episode log
// lives in, plus an in-memory workbook.
//
// A workbook is an ordered list of named sheets. Row 1 of each sheet is the
// header; rows 2..N are records. Rows and columns are addressed 1-based, the
// way spreadsheet tools address them.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tvlog/internal/coerce"
)

// ErrSheetNotFound is returned when a sheet handle no longer resolves.
var ErrSheetNotFound = errors.New("sheet not found")

// Sheet is a handle to one named sheet in a workbook.
type Sheet struct {
	ID    int64
	Title string
}

// Name returns the sheet title.
func (s Sheet) Name() string { return s.Title }

// Record maps a header name to the raw cell value in one row. Values are
// string, float64, int64, bool or nil depending on what the store holds.
type Record map[string]any

// Cell addresses one value for a write.
type Cell struct {
	Row    int
	Column int
	Value  any
}

// Workbook is the handle the loader and writer work against.
type Workbook interface {
	Sheets(ctx context.Context) ([]Sheet, error)
	HeaderRow(ctx context.Context, sheet Sheet) ([]string, error)
	// Records returns rows 2..N in row order. Blank rows between data rows are
	// returned as records with empty values so positions keep mapping to rows.
	Records(ctx context.Context, sheet Sheet) ([]Record, error)
	WriteCell(ctx context.Context, sheet Sheet, row, col int, value any) error
}

// BatchWriter is implemented by stores that can write several cells of one
// sheet in a single round trip. A failed batch is assumed to have written
// nothing.
type BatchWriter interface {
	WriteCells(ctx context.Context, sheet Sheet, cells []Cell) error
}

// ValidateAddress checks that row and col are usable 1-based coordinates.
func ValidateAddress(row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell address row=%d col=%d", row, col)
	}
	return nil
}

// HeaderFromRow renders a raw row 1 as column names with trailing blank
// columns removed.
func HeaderFromRow(row []any) []string {
	header := make([]string, len(row))
	for i, v := range row {
		header[i] = coerce.Text(v)
	}
	last := len(header) - 1
	for last >= 0 && strings.TrimSpace(header[last]) == "" {
		last--
	}
	return header[:last+1]
}

// BuildRecords turns raw data rows into records keyed by header. Short rows
// are padded with empty strings and cells beyond the header are dropped. When
// a header repeats, the first column wins. Trailing rows that are entirely
// blank are trimmed.
func BuildRecords(header []string, rows [][]any) []Record {
	last := len(rows) - 1
	for last >= 0 && rowIsBlank(rows[last]) {
		last--
	}
	records := make([]Record, 0, last+1)
	for _, row := range rows[:last+1] {
		rec := make(Record, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			if _, seen := rec[name]; seen {
				continue
			}
			var value any = ""
			if col < len(row) && row[col] != nil {
				value = row[col]
			}
			rec[name] = value
		}
		records = append(records, rec)
	}
	return records
}

func rowIsBlank(row []any) bool {
	for _, v := range row {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}
