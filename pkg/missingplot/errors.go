package missingplot

import (
	"errors"
	"fmt"
)

// ErrNoMissingValue indicates the table has no missing cell to estimate.
var ErrNoMissingValue = errors.New("no missing value")

// ErrUnsupportedTopology indicates more than two missing cells, or a pair of
// missing cells that does not fit the requested arrangement.
var ErrUnsupportedTopology = errors.New("unsupported missing cell topology")

// ErrDegenerateDesign indicates too few rows or columns for the formula's
// denominator.
var ErrDegenerateDesign = errors.New("degenerate design")

// ErrNumericOverflow indicates a sum or an estimate is not a finite number.
var ErrNumericOverflow = errors.New("numeric overflow")

// ErrInvalidTopology indicates two missing cells at the same coordinates,
// which a valid table cannot contain.
var ErrInvalidTopology = errors.New("invalid missing cell topology")

// ErrStaleResult indicates a result no longer matches the table it is
// applied to.
var ErrStaleResult = errors.New("estimation result does not match table")

// EstimationError represents an error during estimation.
type EstimationError struct {
	Stage    string // "classify", "formula", "assemble", "fill"
	Topology string
	Err      error
}

func (e *EstimationError) Error() string {
	if e.Topology != "" {
		return fmt.Sprintf("estimation error in %s (%s): %v", e.Stage, e.Topology, e.Err)
	}
	return fmt.Sprintf("estimation error in %s: %v", e.Stage, e.Err)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}

// NewEstimationError creates a new EstimationError.
func NewEstimationError(stage, topology string, err error) *EstimationError {
	return &EstimationError{
		Stage:    stage,
		Topology: topology,
		Err:      err,
	}
}
