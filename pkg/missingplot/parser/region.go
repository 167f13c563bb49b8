package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// bounds is an inclusive 0-based cell region.
type bounds struct {
	minRow, maxRow int
	minCol, maxCol int
}

func (b bounds) empty() bool {
	return b.minRow < 0
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) bounds {
	b := bounds{minRow: -1, maxRow: -1, minCol: -1, maxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if b.minRow < 0 || rowIdx < b.minRow {
				b.minRow = rowIdx
			}
			if b.maxRow < 0 || rowIdx > b.maxRow {
				b.maxRow = rowIdx
			}
			if b.minCol < 0 || colIdx < b.minCol {
				b.minCol = colIdx
			}
			if b.maxCol < 0 || colIdx > b.maxCol {
				b.maxCol = colIdx
			}
		}
	}

	return b
}

// parseRange parses an A1 range such as $B$2:$D$14 to 0-based bounds.
func parseRange(rangeStr string) (bounds, error) {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return bounds{}, fmt.Errorf("invalid range %q: expected FROM:TO", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return bounds{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return bounds{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return bounds{
		minRow: startRow - 1,
		maxRow: endRow - 1,
		minCol: startCol - 1,
		maxCol: endCol - 1,
	}, nil
}

// printArea returns the first print area defined for sheet.
func printArea(f *excelize.File, sheet string) (bounds, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		for _, part := range strings.Split(dn.RefersTo, ",") {
			// Format: 'Sheet Name'!$A$1:$D$10 or Sheet1!$A$1:$D$10
			idx := strings.LastIndex(part, "!")
			if idx < 0 {
				continue
			}
			if strings.Trim(strings.TrimSpace(part[:idx]), "'") != sheet {
				continue
			}
			if b, err := parseRange(part[idx+1:]); err == nil {
				return b, true
			}
		}
	}
	return bounds{}, false
}
