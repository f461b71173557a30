package api

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tvlog/internal/catalog"
	"tvlog/internal/logging"
	"tvlog/internal/store/sqlitebook"
	"tvlog/internal/textutil"
)

// ImportRequest loads a CSV episode list into a new sheet.
type ImportRequest struct {
	Path string
	// Sheet defaults to the file name without its extension.
	Sheet string
}

// ImportResult describes the created sheet.
type ImportResult struct {
	Sheet   string   `json:"sheet"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
	// AddedShowName is set when the CSV had no Show Name column and one was
	// filled in from the sheet name.
	AddedShowName bool `json:"added_show_name"`
	// AddedTracking lists tracking columns the CSV lacked. They are appended
	// in canonical order and filled with their defaults so the show can be
	// marked right away.
	AddedTracking []string `json:"added_tracking,omitempty"`
}

// Import creates a sheet from a CSV file. Only the local workbook supports
// creating sheets.
func (s *Service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	book, ok := s.book.(*sqlitebook.Book)
	if !ok {
		return ImportResult{}, ErrImportUnsupported
	}
	unlock, err := s.acquireLock()
	if err != nil {
		return ImportResult{}, err
	}
	defer unlock()

	result, err := ImportCSV(ctx, book, req)
	if err != nil {
		return result, err
	}
	s.Invalidate()
	s.logger.Info("csv imported",
		logging.Show(result.Sheet),
		logging.Int("rows", result.Rows),
		logging.String("source", req.Path),
	)
	return result, nil
}

// ImportCSV reads req.Path and writes it to book as a new sheet. The first
// CSV record is the header. Cell text is stored as-is; coercion happens on
// read like for any hand-edited sheet.
func ImportCSV(ctx context.Context, book *sqlitebook.Book, req ImportRequest) (ImportResult, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	sheetName := strings.TrimSpace(req.Sheet)
	if sheetName == "" {
		base := filepath.Base(req.Path)
		sheetName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	header, rows, err := readCSV(f)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read %s: %w", req.Path, err)
	}

	result := ImportResult{Sheet: sheetName}
	if !hasShowName(header) {
		header = append([]string{catalog.ColShowName}, header...)
		for i, row := range rows {
			rows[i] = append([]any{sheetName}, row...)
		}
		result.AddedShowName = true
	}
	header, rows, result.AddedTracking = addTrackingColumns(header, rows)
	result.Columns = header

	sheet, err := book.CreateSheet(ctx, sheetName, header)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) > 0 {
		if _, err := book.AppendRows(ctx, sheet, rows); err != nil {
			return ImportResult{}, fmt.Errorf("append rows: %w", err)
		}
	}
	result.Rows = len(rows)
	return result, nil
}

func readCSV(r io.Reader) ([]string, [][]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = canonicalColumn(strings.TrimSpace(header[i]))
	}

	var rows [][]any
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

var knownColumns = []string{
	catalog.ColShowName, catalog.ColSeason, catalog.ColEpisode, catalog.ColEpisodeTitle,
	catalog.ColRating, catalog.ColRuntime, catalog.ColReleaseDate, catalog.ColSynopsis,
	catalog.ColWatched, catalog.ColPersonalRating, catalog.ColFavorite, catalog.ColWatchDate,
}

// canonicalColumn spells a header the way the loader expects when it folds
// to a known column, so "show name" imports as "Show Name".
func canonicalColumn(name string) string {
	for _, known := range knownColumns {
		if textutil.EqualFold(name, known) {
			return known
		}
	}
	return name
}

// addTrackingColumns appends every tracking column absent from header and
// fills each row with that column's default. Short rows are padded first so
// the defaults land under their headers.
func addTrackingColumns(header []string, rows [][]any) ([]string, [][]any, []string) {
	var added []catalog.TrackingColumn
	for _, tc := range catalog.TrackingColumns {
		if !containsHeader(header, tc.Name) {
			added = append(added, tc)
		}
	}
	if len(added) == 0 {
		return header, rows, nil
	}

	width := len(header)
	names := make([]string, len(added))
	for i, tc := range added {
		names[i] = tc.Name
		header = append(header, tc.Name)
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		for _, tc := range added {
			row = append(row, tc.Default)
		}
		rows[i] = row
	}
	return header, rows, names
}

func containsHeader(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

func hasShowName(header []string) bool {
	return containsHeader(header, catalog.ColShowName)
}
