package sqlitebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tvlog/internal/store"
)

// ErrSheetExists is returned by CreateSheet when the title is taken.
var ErrSheetExists = errors.New("sheet already exists")

// Sheets lists worksheets in creation order.
func (b *Book) Sheets(ctx context.Context) ([]store.Sheet, error) {
	ctx = ensureContext(ctx)
	rows, err := b.db.QueryContext(ctx, "SELECT id, title FROM sheets ORDER BY ordinal, id")
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()

	var sheets []store.Sheet
	for rows.Next() {
		var sheet store.Sheet
		if err := rows.Scan(&sheet.ID, &sheet.Title); err != nil {
			return nil, fmt.Errorf("scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheets: %w", err)
	}
	return sheets, nil
}

// SheetByTitle resolves a worksheet by its exact title.
func (b *Book) SheetByTitle(ctx context.Context, title string) (store.Sheet, error) {
	ctx = ensureContext(ctx)
	sheet := store.Sheet{Title: title}
	err := b.db.QueryRowContext(ctx, "SELECT id FROM sheets WHERE title = ?", title).Scan(&sheet.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Sheet{}, fmt.Errorf("%w: %q", store.ErrSheetNotFound, title)
	}
	if err != nil {
		return store.Sheet{}, fmt.Errorf("lookup sheet %q: %w", title, err)
	}
	return sheet, nil
}

// resolve returns the database id for sheet, preferring the handle's id.
func (b *Book) resolve(ctx context.Context, sheet store.Sheet) (int64, error) {
	if sheet.ID != 0 {
		var id int64
		err := b.db.QueryRowContext(ctx, "SELECT id FROM sheets WHERE id = ?", sheet.ID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: id %d", store.ErrSheetNotFound, sheet.ID)
		}
		if err != nil {
			return 0, fmt.Errorf("lookup sheet %d: %w", sheet.ID, err)
		}
		return id, nil
	}
	resolved, err := b.SheetByTitle(ctx, sheet.Title)
	if err != nil {
		return 0, err
	}
	return resolved.ID, nil
}

// HeaderRow returns row 1 as text with trailing blank columns removed.
func (b *Book) HeaderRow(ctx context.Context, sheet store.Sheet) ([]string, error) {
	ctx = ensureContext(ctx)
	id, err := b.resolve(ctx, sheet)
	if err != nil {
		return nil, err
	}
	grid, err := b.readRows(ctx, id, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, nil
	}
	return store.HeaderFromRow(grid[0]), nil
}

// Records returns rows 2..N keyed by the header. Missing rows between data
// rows come back as blank records so positions keep mapping to row numbers.
func (b *Book) Records(ctx context.Context, sheet store.Sheet) ([]store.Record, error) {
	ctx = ensureContext(ctx)
	id, err := b.resolve(ctx, sheet)
	if err != nil {
		return nil, err
	}
	grid, err := b.readRows(ctx, id, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, nil
	}
	return store.BuildRecords(store.HeaderFromRow(grid[0]), grid[1:]), nil
}

// readRows loads rows first..last (last <= 0 means no upper bound) into a
// dense grid indexed from first.
func (b *Book) readRows(ctx context.Context, sheetID int64, first, last int) ([][]any, error) {
	query := "SELECT row_num, col_num, kind, value FROM cells WHERE sheet_id = ? AND row_num >= ?"
	args := []any{sheetID, first}
	if last > 0 {
		query += " AND row_num <= ?"
		args = append(args, last)
	}
	query += " ORDER BY row_num, col_num"

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read cells: %w", err)
	}
	defer rows.Close()

	var grid [][]any
	for rows.Next() {
		var (
			rowNum, colNum int
			kind, text     string
		)
		if err := rows.Scan(&rowNum, &colNum, &kind, &text); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		idx := rowNum - first
		for len(grid) <= idx {
			grid = append(grid, nil)
		}
		for len(grid[idx]) < colNum {
			grid[idx] = append(grid[idx], "")
		}
		grid[idx][colNum-1] = decodeValue(kind, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	return grid, nil
}

// CreateSheet appends a worksheet with the given header row.
func (b *Book) CreateSheet(ctx context.Context, title string, header []string) (store.Sheet, error) {
	ctx = ensureContext(ctx)
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Sheet{}, errors.New("sheet title is empty")
	}
	sheet := store.Sheet{Title: title}
	err := b.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM sheets WHERE title = ?", title).Scan(&exists); err != nil {
			return fmt.Errorf("check sheet title: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: %q", ErrSheetExists, title)
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO sheets (title, ordinal, created_at) VALUES (?, (SELECT COALESCE(MAX(ordinal), 0) + 1 FROM sheets), ?)",
			title, now())
		if err != nil {
			return fmt.Errorf("insert sheet: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("sheet id: %w", err)
		}
		sheet.ID = id
		cells := make([]store.Cell, 0, len(header))
		for i, name := range header {
			cells = append(cells, store.Cell{Row: 1, Column: i + 1, Value: name})
		}
		return putCells(ctx, tx, id, cells)
	})
	if err != nil {
		return store.Sheet{}, err
	}
	return sheet, nil
}

// AppendRows writes rows after the last non-empty row of sheet and returns
// the row number of the first appended row.
func (b *Book) AppendRows(ctx context.Context, sheet store.Sheet, rows [][]any) (int, error) {
	ctx = ensureContext(ctx)
	id, err := b.resolve(ctx, sheet)
	if err != nil {
		return 0, err
	}
	first := 0
	err = b.inTx(ctx, func(tx *sql.Tx) error {
		var maxRow int
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(row_num), 1) FROM cells WHERE sheet_id = ?", id).Scan(&maxRow); err != nil {
			return fmt.Errorf("find last row: %w", err)
		}
		first = maxRow + 1
		var cells []store.Cell
		for i, row := range rows {
			for j, value := range row {
				cells = append(cells, store.Cell{Row: first + i, Column: j + 1, Value: value})
			}
		}
		return putCells(ctx, tx, id, cells)
	})
	if err != nil {
		return 0, err
	}
	return first, nil
}
