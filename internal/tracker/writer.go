package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tvlog/internal/logging"
	"tvlog/internal/store"
	"tvlog/internal/textutil"
)

// Result reports what Apply did. Field lists follow the order of Fields.
type Result struct {
	Row       int     `json:"row"`
	Attempted []Field `json:"attempted"`
	Applied   []Field `json:"applied"`
	// Skipped fields had no column in the sheet header.
	Skipped []Field `json:"skipped"`
}

// WriteError reports one field whose cell write failed.
type WriteError struct {
	Field  Field
	Row    int
	Column int
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s at row %d column %d: %v", e.Field, e.Row, e.Column, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer applies edits to a workbook.
type Writer struct {
	book   store.Workbook
	logger *slog.Logger
}

// NewWriter returns a writer for book.
func NewWriter(book store.Workbook, logger *slog.Logger) *Writer {
	return &Writer{book: book, logger: logging.NewComponentLogger(logger, "tracker")}
}

type pendingCell struct {
	change
	column int
}

// Apply writes edit to the episode at position in sheet.
//
// Every value is validated before anything is written. Fields whose column
// is missing from the header are skipped, not created. When the store can
// batch, all cells go out in one call; if that fails each cell is retried on
// its own so the result says exactly which fields landed. Failed fields come
// back as *WriteError values joined into the error, alongside a Result that
// still lists the applied ones.
func (w *Writer) Apply(ctx context.Context, sheet store.Sheet, position int, edit Edit) (Result, error) {
	if position < 0 {
		return Result{}, fmt.Errorf("%w: negative position %d", ErrInvalidEdit, position)
	}
	result := Result{Row: position + 2}

	changes, err := edit.normalize()
	if err != nil {
		return result, err
	}
	if len(changes) == 0 {
		return result, nil
	}
	for _, c := range changes {
		result.Attempted = append(result.Attempted, c.field)
	}

	header, err := w.book.HeaderRow(ctx, sheet)
	if err != nil {
		return result, fmt.Errorf("read header of %q: %w", sheet.Title, err)
	}

	var cells []pendingCell
	for _, c := range changes {
		col := columnIndex(header, c.field.Column())
		if col == 0 {
			result.Skipped = append(result.Skipped, c.field)
			continue
		}
		cells = append(cells, pendingCell{change: c, column: col})
	}

	logger := logging.WithContext(ctx, w.logger).With(
		logging.Show(sheet.Title),
		logging.Row(result.Row),
	)
	if len(result.Skipped) > 0 {
		logger.Info("tracking columns missing, fields skipped",
			logging.Strings("skipped", fieldNames(result.Skipped)))
	}
	if len(cells) == 0 {
		return result, nil
	}

	if batcher, ok := w.book.(store.BatchWriter); ok && len(cells) > 1 {
		batch := make([]store.Cell, len(cells))
		for i, cell := range cells {
			batch[i] = store.Cell{Row: result.Row, Column: cell.column, Value: cell.value}
		}
		err := batcher.WriteCells(ctx, sheet, batch)
		if err == nil {
			for _, cell := range cells {
				result.Applied = append(result.Applied, cell.field)
			}
			logger.Debug("episode updated", logging.Strings(logging.FieldFields, fieldNames(result.Applied)))
			return result, nil
		}
		logging.WarnWithContext(logger, "batch write failed, retrying cells individually", "batch_write_failed",
			logging.Error(err),
			logging.Impact("one request per field"),
		)
	}

	var errs []error
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			errs = append(errs, &WriteError{Field: cell.field, Row: result.Row, Column: cell.column, Err: err})
			continue
		}
		if err := w.book.WriteCell(ctx, sheet, result.Row, cell.column, cell.value); err != nil {
			errs = append(errs, &WriteError{Field: cell.field, Row: result.Row, Column: cell.column, Err: err})
			logging.WarnWithContext(logger, "cell write failed", "cell_write_failed",
				logging.Field(string(cell.field)),
				logging.Error(err),
				logging.Hint("retry the edit; other fields were written independently"),
			)
			continue
		}
		result.Applied = append(result.Applied, cell.field)
	}
	logger.Debug("episode updated", logging.Strings(logging.FieldFields, fieldNames(result.Applied)))
	return result, errors.Join(errs...)
}

// columnIndex returns the 1-based column of name in header, or 0. An exact
// match wins over a folded one.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i + 1
		}
	}
	folded := textutil.FoldHeader(name)
	for i, h := range header {
		if textutil.FoldHeader(h) == folded {
			return i + 1
		}
	}
	return 0
}

func fieldNames(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
