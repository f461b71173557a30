package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRecordsKeepBlankInteriorRows(t *testing.T) {
	m := NewMemory()
	sheet := m.AddSheet("Show", []string{"Show Name", "Season", ""},
		[]any{"Show", 1},
		[]any{},
		[]any{"Show", 2, "stray"},
		[]any{"", ""},
	)

	header, err := m.HeaderRow(context.Background(), sheet)
	if err != nil {
		t.Fatalf("HeaderRow: %v", err)
	}
	if len(header) != 2 {
		t.Fatalf("expected trailing blank header to be trimmed, got %q", header)
	}

	records, err := m.Records(context.Background(), sheet)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records (trailing blank trimmed), got %d", len(records))
	}
	if records[1]["Show Name"] != "" || records[1]["Season"] != "" {
		t.Fatalf("expected blank interior row, got %#v", records[1])
	}
	if records[2]["Season"] != 2 {
		t.Fatalf("unexpected season: %#v", records[2]["Season"])
	}
	if _, ok := records[2][""]; ok {
		t.Fatal("cells without a header must be dropped")
	}
}

func TestMemoryWriteCellGrowsGrid(t *testing.T) {
	m := NewMemory()
	sheet := m.AddSheet("Show", []string{"Show Name"}, []any{"Show"})

	if err := m.WriteCell(context.Background(), sheet, 4, 3, "Yes"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if got := m.Cell("Show", 4, 3); got != "Yes" {
		t.Fatalf("Cell(4,3) = %#v", got)
	}
	if got := m.Cell("Show", 2, 1); got != "Show" {
		t.Fatalf("unrelated cell changed: %#v", got)
	}
}

func TestMemoryWriteRejectsBadAddress(t *testing.T) {
	m := NewMemory()
	sheet := m.AddSheet("Show", []string{"Show Name"})

	if err := m.WriteCell(context.Background(), sheet, 0, 1, "x"); err == nil {
		t.Fatal("expected row 0 to be rejected")
	}
	err := m.WriteCells(context.Background(), sheet, []Cell{{Row: 2, Column: 1, Value: "a"}, {Row: 2, Column: 0, Value: "b"}})
	if err == nil {
		t.Fatal("expected batch with bad address to fail")
	}
	if got := m.Cell("Show", 2, 1); got != nil {
		t.Fatalf("failed batch must not write, got %#v", got)
	}
}

func TestMemoryUnknownSheet(t *testing.T) {
	m := NewMemory()
	_, err := m.HeaderRow(context.Background(), Sheet{ID: 99, Title: "Missing"})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestBuildRecordsDuplicateHeaderFirstWins(t *testing.T) {
	records := BuildRecords([]string{"Rating", "Rating"}, [][]any{{"8.1", "2.0"}})
	if len(records) != 1 || records[0]["Rating"] != "8.1" {
		t.Fatalf("unexpected records: %#v", records)
	}
}
