package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Format is an input or output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat returns the format implied by a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a design from a CSV file or workbook.
func Load(path string, opts Options) (*models.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return ReadXLSXFile(path, opts)
	default:
		return ReadCSVFile(path, opts)
	}
}
