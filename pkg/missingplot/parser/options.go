// Package parser reads two-way designs from CSV files and workbooks.
package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ParseError locates a malformed record in the input.
type ParseError struct {
	Source string // file or sheet name
	Line   int    // 1-based line or worksheet row, 0 if not applicable
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s line %d (%s): %v", e.Source, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("parse error in %s (%s): %v", e.Source, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options configures how records map to cells.
type Options struct {
	// RowField, ColField and ValueField select the row label, column label
	// and value fields, either by header text (case-insensitive) or by
	// 1-based position. Empty selects positions 1, 2 and 3.
	RowField   string
	ColField   string
	ValueField string
	// MissingTokens lists values read as missing in addition to an empty
	// field.
	MissingTokens []string
	// NoHeader reports that the first record is data.
	NoHeader bool
	// Sheet is the worksheet to read. Empty selects the first sheet.
	Sheet string
	// Range restricts a worksheet to an A1 range such as "B2:D14". Empty
	// selects the sheet's print area, or the bounding box of non-empty
	// cells when there is none.
	Range string
}

// DefaultOptions returns default read options. "." is the system-missing
// marker of SPSS exports.
func DefaultOptions() Options {
	return Options{
		MissingTokens: []string{".", "NA"},
	}
}
