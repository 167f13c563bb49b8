package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// DefaultHeader is the header written by WriteCSV when none is given.
var DefaultHeader = []string{"row", "col", "value"}

// WriteCSV writes the cells of t as row, column, value records. Missing
// values are written as empty fields.
func WriteCSV(w io.Writer, t *models.Table, header []string) error {
	if header == nil {
		header = DefaultHeader
	}

	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, c := range t.Cells() {
		value := ""
		if !c.Value.IsMissing() {
			value = c.Value.String()
		}
		if err := cw.Write([]string{c.Row, c.Col, value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
