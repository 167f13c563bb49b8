package output

import (
	"errors"
	"fmt"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSourceRef indicates a cell has no workbook location to write to.
var ErrNoSourceRef = errors.New("cell has no source reference")

// ApplyXLSX writes each estimate into the workbook cell its table cell was
// read from. t must be the table res was computed from.
func ApplyXLSX(f *excelize.File, sheet string, t *models.Table, res *models.EstimationResult) error {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	for _, e := range res.Estimates {
		if e.Index < 0 || e.Index >= t.Len() {
			return fmt.Errorf("estimate index %d out of range", e.Index)
		}
		ref := t.Cell(e.Index).Ref
		if ref == "" {
			return fmt.Errorf("%w: (%s, %s)", ErrNoSourceRef, e.Row, e.Col)
		}
		if err := f.SetCellFloat(sheet, ref, e.Value, -1, 64); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, ref, err)
		}
	}
	return nil
}

// WriteXLSX copies the workbook at src to dst with the estimates written
// in. src is left unchanged unless dst names the same file.
func WriteXLSX(src, dst, sheet string, t *models.Table, res *models.EstimationResult) error {
	f, err := excelize.OpenFile(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	if err := ApplyXLSX(f, sheet, t, res); err != nil {
		return err
	}
	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}
	return nil
}
