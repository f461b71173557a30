// Package sqlitebook stores a workbook in a local SQLite file.
//
// Each worksheet is a row in the sheets table and every non-empty cell is a
// row in the cells table, addressed by 1-based row and column like a
// spreadsheet. Cells keep a value kind next to their text so a number typed as
// "9.0", a scraped float 9 and a boolean TRUE come back exactly as they went
// in. Blank cells are simply absent.
//
// The database runs in WAL mode with a busy timeout, and writes retry briefly
// on SQLITE_BUSY so a reader in another tvlog process does not fail an edit.
// The schema is versioned; a mismatch is reported instead of migrated.
package sqlitebook
