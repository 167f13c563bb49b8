package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

var errNotNumber = errors.New("value is neither a number nor a missing marker")

// grid is a rectangular view of raw records with the region to read.
type grid struct {
	source string
	rows   [][]string
	bounds bounds
	// line converts a grid row index to the 1-based line reported in errors.
	line func(rowIdx int) int
	// ref returns the source reference of a cell, or "".
	ref func(rowIdx, colIdx int) string
}

func (g *grid) at(rowIdx, colIdx int) string {
	if rowIdx >= len(g.rows) || colIdx >= len(g.rows[rowIdx]) {
		return ""
	}
	return strings.TrimSpace(g.rows[rowIdx][colIdx])
}

// buildTable converts the grid region to a table.
func buildTable(g *grid, opts Options) (*models.Table, error) {
	if g.bounds.empty() {
		return nil, &ParseError{Source: g.source, Field: "data", Err: fmt.Errorf("%w: no data", models.ErrInvalidTable)}
	}

	first := g.bounds.minRow
	var header []string
	if !opts.NoHeader {
		for col := g.bounds.minCol; col <= g.bounds.maxCol; col++ {
			header = append(header, g.at(first, col))
		}
		first++
	}

	rowCol, err := resolveField(g, header, opts.RowField, 1, "row")
	if err != nil {
		return nil, err
	}
	colCol, err := resolveField(g, header, opts.ColField, 2, "col")
	if err != nil {
		return nil, err
	}
	valCol, err := resolveField(g, header, opts.ValueField, 3, "value")
	if err != nil {
		return nil, err
	}

	missing := make(map[string]bool, len(opts.MissingTokens))
	for _, tok := range opts.MissingTokens {
		missing[strings.TrimSpace(tok)] = true
	}

	var cells []models.Cell
	for rowIdx := first; rowIdx <= g.bounds.maxRow; rowIdx++ {
		if g.blank(rowIdx) {
			continue
		}
		row := g.at(rowIdx, rowCol)
		col := g.at(rowIdx, colCol)
		if row == "" {
			return nil, &ParseError{Source: g.source, Line: g.line(rowIdx), Field: "row", Err: errors.New("empty row label")}
		}
		if col == "" {
			return nil, &ParseError{Source: g.source, Line: g.line(rowIdx), Field: "col", Err: errors.New("empty column label")}
		}
		v, err := parseValue(g.at(rowIdx, valCol), missing)
		if err != nil {
			return nil, &ParseError{Source: g.source, Line: g.line(rowIdx), Field: "value", Err: err}
		}
		cell := models.Cell{Row: row, Col: col, Value: v}
		if g.ref != nil {
			cell.Ref = g.ref(rowIdx, valCol)
		}
		cells = append(cells, cell)
	}

	t, err := models.NewTable(cells)
	if err != nil {
		return nil, &ParseError{Source: g.source, Field: "data", Err: err}
	}
	return t, nil
}

func (g *grid) blank(rowIdx int) bool {
	for col := g.bounds.minCol; col <= g.bounds.maxCol; col++ {
		if g.at(rowIdx, col) != "" {
			return false
		}
	}
	return true
}

// resolveField returns the grid column of a field selected by header text
// or 1-based position within the region.
func resolveField(g *grid, header []string, field string, def int, name string) (int, error) {
	width := g.bounds.maxCol - g.bounds.minCol + 1
	pos := def
	if field != "" {
		pos = 0
		for i, h := range header {
			if strings.EqualFold(h, field) {
				pos = i + 1
				break
			}
		}
		if pos == 0 {
			n, err := strconv.Atoi(field)
			if err != nil {
				return 0, &ParseError{Source: g.source, Field: name, Err: fmt.Errorf("no column named %q", field)}
			}
			pos = n
		}
	}
	if pos < 1 || pos > width {
		return 0, &ParseError{Source: g.source, Field: name, Err: fmt.Errorf("column %d outside the %d columns of the data", pos, width)}
	}
	return g.bounds.minCol + pos - 1, nil
}

// parseValue parses a field as a number or a missing marker.
func parseValue(s string, missing map[string]bool) (models.Value, error) {
	if s == "" || missing[s] {
		return models.Missing(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Value{}, fmt.Errorf("%w: %q", errNotNumber, s)
	}
	return models.Number(f), nil
}
