package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidTable indicates the cells do not form a usable table.
var ErrInvalidTable = errors.New("invalid table")

// ErrDuplicateCell indicates a (row, column) pair occurs more than once.
var ErrDuplicateCell = errors.New("duplicate cell")

type cellKey struct {
	row, col string
}

// Table is an ordered collection of cells of a two-way design.
// Each (row, column) pair occurs at most once.
type Table struct {
	cells []Cell
	rows  []string
	cols  []string
	index map[cellKey]int
}

// NewTable validates cells and returns a table holding a copy of them.
func NewTable(cells []Cell) (*Table, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidTable)
	}

	t := &Table{
		cells: make([]Cell, len(cells)),
		index: make(map[cellKey]int, len(cells)),
	}
	copy(t.cells, cells)

	seenRows := make(map[string]bool)
	seenCols := make(map[string]bool)
	for i, c := range t.cells {
		if f, ok := c.Value.Float(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("%w: cell %d (%s, %s) is not a finite number", ErrInvalidTable, i, c.Row, c.Col)
		}
		key := cellKey{c.Row, c.Col}
		if prev, ok := t.index[key]; ok {
			return nil, fmt.Errorf("%w: (%s, %s) at %d and %d", ErrDuplicateCell, c.Row, c.Col, prev, i)
		}
		t.index[key] = i
		if !seenRows[c.Row] {
			seenRows[c.Row] = true
			t.rows = append(t.rows, c.Row)
		}
		if !seenCols[c.Col] {
			seenCols[c.Col] = true
			t.cols = append(t.cols, c.Col)
		}
	}

	return t, nil
}

// Len returns the number of cells.
func (t *Table) Len() int {
	return len(t.cells)
}

// Cell returns the cell at index i.
func (t *Table) Cell(i int) Cell {
	return t.cells[i]
}

// Cells returns a copy of the cells in table order.
func (t *Table) Cells() []Cell {
	out := make([]Cell, len(t.cells))
	copy(out, t.cells)
	return out
}

// Lookup returns the index of the cell at (row, col).
func (t *Table) Lookup(row, col string) (int, bool) {
	i, ok := t.index[cellKey{row, col}]
	return i, ok
}

// Rows returns the distinct row labels in first-seen order.
func (t *Table) Rows() []string {
	return append([]string(nil), t.rows...)
}

// Cols returns the distinct column labels in first-seen order.
func (t *Table) Cols() []string {
	return append([]string(nil), t.cols...)
}

// RowCount returns the number of distinct row labels, including rows
// whose only cells are missing.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColCount returns the number of distinct column labels.
func (t *Table) ColCount() int {
	return len(t.cols)
}

// RowSum sums the present values of row. An empty sum is 0.
func (t *Table) RowSum(row string) float64 {
	return t.sum(func(c Cell) bool { return c.Row == row })
}

// ColSum sums the present values of col. An empty sum is 0.
func (t *Table) ColSum(col string) float64 {
	return t.sum(func(c Cell) bool { return c.Col == col })
}

// GrandSum sums every present value.
func (t *Table) GrandSum() float64 {
	return t.sum(func(Cell) bool { return true })
}

func (t *Table) sum(match func(Cell) bool) float64 {
	var vals []float64
	for _, c := range t.cells {
		if f, ok := c.Value.Float(); ok && match(c) {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return floats.Sum(vals)
}

// FindMissing returns the missing cells in table order.
func (t *Table) FindMissing() []MissingCell {
	var missing []MissingCell
	for i, c := range t.cells {
		if c.Value.IsMissing() {
			missing = append(missing, MissingCell{Index: i, Row: c.Row, Col: c.Col})
		}
	}
	return missing
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	c := &Table{
		cells: make([]Cell, len(t.cells)),
		rows:  append([]string(nil), t.rows...),
		cols:  append([]string(nil), t.cols...),
		index: make(map[cellKey]int, len(t.index)),
	}
	copy(c.cells, t.cells)
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

// SetValue replaces the value of the cell at index i.
func (t *Table) SetValue(i int, v Value) error {
	if i < 0 || i >= len(t.cells) {
		return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidTable, i, len(t.cells))
	}
	if f, ok := v.Float(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("%w: value for cell %d is not a finite number", ErrInvalidTable, i)
	}
	t.cells[i].Value = v
	return nil
}
