package sqlitebook

import (
	"context"
	"database/sql"
	"fmt"

	"tvlog/internal/store"
)

const upsertCellSQL = `INSERT INTO cells (sheet_id, row_num, col_num, kind, value, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(sheet_id, row_num, col_num) DO UPDATE SET
    kind = excluded.kind,
    value = excluded.value,
    updated_at = excluded.updated_at`

const deleteCellSQL = "DELETE FROM cells WHERE sheet_id = ? AND row_num = ? AND col_num = ?"

// WriteCell sets one cell. A nil value clears it.
func (b *Book) WriteCell(ctx context.Context, sheet store.Sheet, row, col int, value any) error {
	return b.WriteCells(ctx, sheet, []store.Cell{{Row: row, Column: col, Value: value}})
}

// WriteCells sets several cells of one sheet in a single transaction. Either
// every cell is written or none is.
func (b *Book) WriteCells(ctx context.Context, sheet store.Sheet, cells []store.Cell) error {
	ctx = ensureContext(ctx)
	for _, cell := range cells {
		if err := store.ValidateAddress(cell.Row, cell.Column); err != nil {
			return err
		}
		if _, _, _, err := encodeValue(cell.Value); err != nil {
			return err
		}
	}
	id, err := b.resolve(ctx, sheet)
	if err != nil {
		return err
	}
	return b.inTx(ctx, func(tx *sql.Tx) error {
		return putCells(ctx, tx, id, cells)
	})
}

func putCells(ctx context.Context, tx *sql.Tx, sheetID int64, cells []store.Cell) error {
	if len(cells) == 0 {
		return nil
	}
	upsert, err := tx.PrepareContext(ctx, upsertCellSQL)
	if err != nil {
		return fmt.Errorf("prepare cell upsert: %w", err)
	}
	defer upsert.Close()

	stamp := now()
	for _, cell := range cells {
		kind, text, ok, err := encodeValue(cell.Value)
		if err != nil {
			return fmt.Errorf("cell r%dc%d: %w", cell.Row, cell.Column, err)
		}
		if !ok {
			if _, err := tx.ExecContext(ctx, deleteCellSQL, sheetID, cell.Row, cell.Column); err != nil {
				return fmt.Errorf("clear cell r%dc%d: %w", cell.Row, cell.Column, err)
			}
			continue
		}
		if _, err := upsert.ExecContext(ctx, sheetID, cell.Row, cell.Column, kind, text, stamp); err != nil {
			return fmt.Errorf("write cell r%dc%d: %w", cell.Row, cell.Column, err)
		}
	}
	return nil
}
