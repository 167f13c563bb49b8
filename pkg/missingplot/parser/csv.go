package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// ReadCSV reads a design from CSV records of row label, column label and
// value. Range and Sheet are ignored.
func ReadCSV(r io.Reader, source string, opts Options) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Source: source, Field: "csv", Err: err}
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = trimBOM(records[0][0])
	}

	g := &grid{
		source: source,
		rows:   records,
		bounds: findDataBounds(records),
		line:   func(rowIdx int) int { return rowIdx + 1 },
	}
	return buildTable(g, opts)
}

// ReadCSVFile reads a design from a CSV file.
func ReadCSVFile(path string, opts Options) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f, path, opts)
}

// trimBOM drops the UTF-8 byte order mark spreadsheet programs prepend.
func trimBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}
