package missingplot

import (
	"fmt"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/parser"
)

// Estimate estimates the missing cells of t.
// The table is only read; use Fill to obtain a completed copy.
func Estimate(t *models.Table, opts Options) (*models.EstimationResult, error) {
	if t == nil {
		return nil, NewEstimationError("classify", "", fmt.Errorf("%w: nil table", models.ErrInvalidTable))
	}
	if _, err := ParseSameColumnFormula(string(opts.SameColumnFormula)); err != nil {
		return nil, err
	}

	top, err := Classify(t.FindMissing())
	if err != nil {
		return nil, NewEstimationError("classify", "", err)
	}

	est, err := estimate(t, top, opts)
	if err != nil {
		return nil, NewEstimationError("formula", top.Name(), err)
	}

	res, err := assemble(top, est)
	if err != nil {
		return nil, NewEstimationError("assemble", top.Name(), err)
	}
	return res, nil
}

// EstimateFile loads a design from a CSV or xlsx file and estimates its
// missing cells.
func EstimateFile(path string, opts Options, readOpts parser.Options) (*models.Table, *models.EstimationResult, error) {
	t, err := parser.Load(path, readOpts)
	if err != nil {
		return nil, nil, err
	}

	res, err := Estimate(t, opts)
	if err != nil {
		return t, nil, err
	}
	return t, res, nil
}
