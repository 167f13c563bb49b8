package parser

import (
	"fmt"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a design from a worksheet. The region read is opts.Range,
// else the sheet's print area, else the bounding box of non-empty cells.
// Each cell's Ref is the A1 name of its value cell.
func ReadXLSX(f *excelize.File, opts Options) (*models.Table, error) {
	sheetName := opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &ParseError{Source: "workbook", Field: "sheet", Err: fmt.Errorf("%w: workbook has no sheets", models.ErrInvalidTable)}
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Source: sheetName, Field: "sheet", Err: err}
	}

	g := &grid{
		source: sheetName,
		rows:   rows,
		line:   func(rowIdx int) int { return rowIdx + 1 },
		ref: func(rowIdx, colIdx int) string {
			name, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			return name
		},
	}
	if opts.Range != "" {
		b, err := parseRange(opts.Range)
		if err != nil {
			return nil, &ParseError{Source: sheetName, Field: "range", Err: err}
		}
		g.bounds = b
	} else if b, ok := printArea(f, sheetName); ok {
		g.bounds = b
	} else {
		g.bounds = findDataBounds(rows)
	}

	return buildTable(g, opts)
}

// ReadXLSXFile reads a design from a workbook file.
func ReadXLSXFile(path string, opts Options) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadXLSX(f, opts)
}
