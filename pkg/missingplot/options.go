// Package missingplot estimates missing observations of a two-way design
// without replication using the classical missing plot technique.
package missingplot

import "fmt"

// SameColumnFormula selects the estimator used when both missing cells
// share a column.
type SameColumnFormula string

const (
	// SameColumnSymmetric is the transpose of the same-row estimator. It
	// recovers the true values of additive data.
	SameColumnSymmetric SameColumnFormula = "symmetric"
	// SameColumnLiteral puts the (r-1) weight on the column sum and c on
	// the first row sum, as some SPSS macros do. It does not recover
	// additive data; use it only to reproduce outputs of those macros.
	SameColumnLiteral SameColumnFormula = "literal"
)

// ParseSameColumnFormula converts a name to a SameColumnFormula.
func ParseSameColumnFormula(s string) (SameColumnFormula, error) {
	switch SameColumnFormula(s) {
	case SameColumnSymmetric, "":
		return SameColumnSymmetric, nil
	case SameColumnLiteral:
		return SameColumnLiteral, nil
	default:
		return "", fmt.Errorf("invalid same-column formula: %s (must be symmetric or literal)", s)
	}
}

// Options configures estimation behavior.
type Options struct {
	// SameColumnFormula selects the same-column estimator.
	// The zero value means SameColumnSymmetric.
	SameColumnFormula SameColumnFormula
}

// DefaultOptions returns default estimation options.
func DefaultOptions() Options {
	return Options{
		SameColumnFormula: SameColumnSymmetric,
	}
}

func (o Options) sameColumn() SameColumnFormula {
	if o.SameColumnFormula == "" {
		return SameColumnSymmetric
	}
	return o.SameColumnFormula
}
