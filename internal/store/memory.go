package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process workbook. It backs tests and fixtures and behaves
// like the remote stores: headers are row 1, writes may extend the grid.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	sheets []*memorySheet
}

type memorySheet struct {
	sheet Sheet
	grid  [][]any
}

// NewMemory returns an empty workbook.
func NewMemory() *Memory {
	return &Memory{}
}

// AddSheet appends a sheet with the given header and data rows.
func (m *Memory) AddSheet(title string, header []string, rows ...[]any) Sheet {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	sheet := Sheet{ID: m.nextID, Title: title}
	grid := make([][]any, 0, len(rows)+1)
	if header != nil {
		head := make([]any, len(header))
		for i, name := range header {
			head[i] = name
		}
		grid = append(grid, head)
	}
	for _, row := range rows {
		grid = append(grid, append([]any(nil), row...))
	}
	m.sheets = append(m.sheets, &memorySheet{sheet: sheet, grid: grid})
	return sheet
}

// Sheets lists sheets in insertion order.
func (m *Memory) Sheets(context.Context) ([]Sheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Sheet, 0, len(m.sheets))
	for _, s := range m.sheets {
		out = append(out, s.sheet)
	}
	return out, nil
}

// HeaderRow returns row 1 as text.
func (m *Memory) HeaderRow(_ context.Context, sheet Sheet) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return nil, err
	}
	if len(s.grid) == 0 {
		return nil, nil
	}
	return HeaderFromRow(s.grid[0]), nil
}

// Records returns rows 2..N keyed by header.
func (m *Memory) Records(ctx context.Context, sheet Sheet) ([]Record, error) {
	header, err := m.HeaderRow(ctx, sheet)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.lookup(sheet)
	if err != nil {
		return nil, err
	}
	if len(s.grid) < 2 {
		return nil, nil
	}
	return BuildRecords(header, s.grid[1:]), nil
}

// WriteCell stores value at the 1-based address, growing the grid if needed.
func (m *Memory) WriteCell(_ context.Context, sheet Sheet, row, col int, value any) error {
	if err := ValidateAddress(row, col); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return err
	}
	s.set(row, col, value)
	return nil
}

// WriteCells applies every cell or none of them.
func (m *Memory) WriteCells(_ context.Context, sheet Sheet, cells []Cell) error {
	for _, c := range cells {
		if err := ValidateAddress(c.Row, c.Column); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return err
	}
	for _, c := range cells {
		s.set(c.Row, c.Column, c.Value)
	}
	return nil
}

// Cell reads the raw value at a 1-based address; nil when outside the grid.
func (m *Memory) Cell(title string, row, col int) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sheets {
		if s.sheet.Title != title {
			continue
		}
		if row < 1 || row > len(s.grid) || col < 1 || col > len(s.grid[row-1]) {
			return nil
		}
		return s.grid[row-1][col-1]
	}
	return nil
}

func (m *Memory) lookup(sheet Sheet) (*memorySheet, error) {
	for _, s := range m.sheets {
		if s.sheet.ID == sheet.ID || (sheet.ID == 0 && s.sheet.Title == sheet.Title) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet.Title)
}

func (s *memorySheet) set(row, col int, value any) {
	for len(s.grid) < row {
		s.grid = append(s.grid, nil)
	}
	line := s.grid[row-1]
	for len(line) < col {
		line = append(line, "")
	}
	line[col-1] = value
	s.grid[row-1] = line
}
