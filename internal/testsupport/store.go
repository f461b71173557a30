package testsupport

import (
	"context"
	"testing"

	"tvlog/internal/config"
	"tvlog/internal/store"
	"tvlog/internal/store/sqlitebook"
)

// BreakingBadHeader is the header of the reference fixture sheet.
var BreakingBadHeader = []string{"Show Name", "Season", "Episode", "Episode Title", "Rating"}

// BreakingBadRows returns the two reference episodes. Ratings are text the
// way a person would type them.
func BreakingBadRows() [][]any {
	return [][]any{
		{"Breaking Bad", int64(1), int64(1), "Pilot", "9.0"},
		{"Breaking Bad", int64(1), int64(2), "Cat's in the Bag...", "8.6"},
	}
}

// BreakingBadWorkbook returns an in-memory workbook with the reference sheet.
func BreakingBadWorkbook() *store.Memory {
	book := store.NewMemory()
	book.AddSheet("Breaking Bad", BreakingBadHeader, BreakingBadRows()...)
	return book
}

// TrackedHeader is a full header including every tracking column.
var TrackedHeader = []string{
	"Show Name", "Season", "Episode", "Episode Title", "Rating", "Runtime",
	"Release Date", "Synopsis", "Watched", "Personal Rating", "Favorite", "Watch Date",
}

// LostRows returns a tracked sheet spanning two seasons with mixed value
// representations.
func LostRows() [][]any {
	return [][]any{
		{"Lost", int64(1), int64(1), "Pilot (1)", 8.9, "42 min", "09-22-2004", "", "Yes", 9.0, "Yes", "01-06-2024"},
		{"Lost", int64(1), int64(2), "Pilot (2)", 8.7, "43 min", "09-29-2004", "", "TRUE", "", "No", "2024-01-07"},
		{"Lost", int64(2), int64(1), "Man of Science, Man of Faith", "8.5", "44", "09-21-2005", "", "In Progress", "", "yes", ""},
		{"Lost", int64(2), int64(2), "Adrift", "", "N/A", "09-28-2005", "", "No", "", "No", "not a date"},
	}
}

// MustOpenBook opens the SQLite workbook configured by cfg and registers cleanup.
func MustOpenBook(t testing.TB, cfg *config.Config) *sqlitebook.Book {
	t.Helper()

	book, err := sqlitebook.Open(cfg.SQLite.Path)
	if err != nil {
		t.Fatalf("sqlitebook.Open: %v", err)
	}
	t.Cleanup(func() {
		book.Close()
	})
	return book
}

// SeedSheet creates a sheet in book and appends rows.
func SeedSheet(t testing.TB, book *sqlitebook.Book, title string, header []string, rows [][]any) store.Sheet {
	t.Helper()

	ctx := context.Background()
	sheet, err := book.CreateSheet(ctx, title, header)
	if err != nil {
		t.Fatalf("CreateSheet(%s): %v", title, err)
	}
	if len(rows) > 0 {
		if _, err := book.AppendRows(ctx, sheet, rows); err != nil {
			t.Fatalf("AppendRows(%s): %v", title, err)
		}
	}
	return sheet
}
