package sqlitebook_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"tvlog/internal/store"
	"tvlog/internal/store/sqlitebook"
)

func openBook(t *testing.T) (*sqlitebook.Book, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "workbook.db")
	book, err := sqlitebook.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { book.Close() })
	return book, path
}

func TestCreateSheetAndReadBack(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)

	sheet, err := book.CreateSheet(ctx, "Breaking Bad", []string{"Show Name", "Season", "Episode", "Rating", "Watched"})
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	first, err := book.AppendRows(ctx, sheet, [][]any{
		{"Breaking Bad", int64(1), int64(1), "9.0", true},
		{"Breaking Bad", 1.0, 2.0, 8.6, "Yes"},
	})
	if err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if first != 2 {
		t.Fatalf("expected first appended row 2, got %d", first)
	}

	header, err := book.HeaderRow(ctx, sheet)
	if err != nil {
		t.Fatalf("HeaderRow: %v", err)
	}
	if want := []string{"Show Name", "Season", "Episode", "Rating", "Watched"}; !reflect.DeepEqual(header, want) {
		t.Fatalf("header = %v, want %v", header, want)
	}

	records, err := book.Records(ctx, sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Values keep their kind.
	if got := records[0]["Season"]; got != int64(1) {
		t.Fatalf("season kind lost: %#v", got)
	}
	if got := records[0]["Rating"]; got != "9.0" {
		t.Fatalf("text rating changed: %#v", got)
	}
	if got := records[0]["Watched"]; got != true {
		t.Fatalf("bool lost: %#v", got)
	}
	if got := records[1]["Rating"]; got != 8.6 {
		t.Fatalf("float rating changed: %#v", got)
	}
}

func TestSheetsKeepCreationOrder(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	for _, title := range []string{"Lost", "Alias", "Fringe"} {
		if _, err := book.CreateSheet(ctx, title, []string{"Show Name"}); err != nil {
			t.Fatalf("CreateSheet(%s): %v", title, err)
		}
	}
	sheets, err := book.Sheets(ctx)
	if err != nil {
		t.Fatalf("Sheets: %v", err)
	}
	var names []string
	for _, s := range sheets {
		names = append(names, s.Name())
	}
	if want := []string{"Lost", "Alias", "Fringe"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("sheet order = %v, want %v", names, want)
	}

	if _, err := book.CreateSheet(ctx, "Lost", nil); !errors.Is(err, sqlitebook.ErrSheetExists) {
		t.Fatalf("expected ErrSheetExists, got %v", err)
	}
}

func TestInteriorBlankRowsKeepPositions(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	sheet, err := book.CreateSheet(ctx, "Lost", []string{"Show Name", "Episode"})
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if err := book.WriteCells(ctx, sheet, []store.Cell{
		{Row: 2, Column: 1, Value: "Lost"},
		{Row: 4, Column: 1, Value: "Lost"},
		{Row: 4, Column: 2, Value: int64(3)},
	}); err != nil {
		t.Fatalf("WriteCells: %v", err)
	}

	records, err := book.Records(ctx, sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records including the blank row, got %d", len(records))
	}
	if records[1]["Show Name"] != "" {
		t.Fatalf("expected blank interior record, got %#v", records[1])
	}
	if records[2]["Episode"] != int64(3) {
		t.Fatalf("row 4 not at position 2: %#v", records[2])
	}
}

func TestWriteCellOverwritesAndClears(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	sheet, err := book.CreateSheet(ctx, "Lost", []string{"Show Name", "Watched", "Watch Date"})
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if _, err := book.AppendRows(ctx, sheet, [][]any{{"Lost", "No", "01-02-2024"}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	if err := book.WriteCell(ctx, sheet, 2, 2, "Yes"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if err := book.WriteCell(ctx, sheet, 2, 3, nil); err != nil {
		t.Fatalf("WriteCell clear: %v", err)
	}

	records, err := book.Records(ctx, sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if records[0]["Watched"] != "Yes" {
		t.Fatalf("expected overwritten Watched, got %#v", records[0]["Watched"])
	}
	if records[0]["Watch Date"] != "" {
		t.Fatalf("expected cleared Watch Date, got %#v", records[0]["Watch Date"])
	}
}

func TestWriteCellsRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	sheet, err := book.CreateSheet(ctx, "Lost", []string{"Show Name", "Watched"})
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	err = book.WriteCells(ctx, sheet, []store.Cell{
		{Row: 2, Column: 2, Value: "Yes"},
		{Row: 2, Column: 0, Value: "bad"},
	})
	if err == nil {
		t.Fatal("expected invalid address to fail the batch")
	}
	records, err := book.Records(ctx, sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected nothing written, got %v", records)
	}

	if err := book.WriteCell(ctx, sheet, 2, 1, struct{}{}); err == nil {
		t.Fatal("expected unsupported value type to fail")
	}
}

func TestUnknownSheet(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	if _, err := book.HeaderRow(ctx, store.Sheet{Title: "Missing"}); !errors.Is(err, store.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound by title, got %v", err)
	}
	if err := book.WriteCell(ctx, store.Sheet{ID: 42}, 1, 1, "x"); !errors.Is(err, store.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound by id, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	book, path := openBook(t)
	if _, err := book.CreateSheet(ctx, "Lost", []string{"Show Name"}); err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if err := book.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := sqlitebook.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	sheet, err := reopened.SheetByTitle(ctx, "Lost")
	if err != nil {
		t.Fatalf("SheetByTitle: %v", err)
	}
	if sheet.ID == 0 {
		t.Fatal("expected sheet id after reopen")
	}
	if err := reopened.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	book, path := openBook(t)
	book.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := sqlitebook.Open(path); !errors.Is(err, sqlitebook.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestValueKindsRoundTrip(t *testing.T) {
	ctx := context.Background()
	book, _ := openBook(t)
	sheet, err := book.CreateSheet(ctx, "Kinds", []string{"A", "B", "C", "D", "E"})
	if err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	row := []any{"text", int64(-7), 2.5, false, ""}
	if _, err := book.AppendRows(ctx, sheet, [][]any{row}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	records, err := book.Records(ctx, sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	got := []any{records[0]["A"], records[0]["B"], records[0]["C"], records[0]["D"], records[0]["E"]}
	if !reflect.DeepEqual(got, row) {
		t.Fatalf("round trip = %#v, want %#v", got, row)
	}
}
