package missingplot

import (
	"fmt"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// assemble pairs each estimated value with the missing cell it fills.
func assemble(top Topology, est *estimation) (*models.EstimationResult, error) {
	missing := top.Missing()
	if len(missing) != len(est.values) {
		return nil, fmt.Errorf("%w: %d values for %d missing cells", ErrInvalidTopology, len(est.values), len(missing))
	}

	estimates := make([]models.Estimate, len(missing))
	for i, m := range missing {
		estimates[i] = models.Estimate{
			Index: m.Index,
			Row:   m.Row,
			Col:   m.Col,
			Value: est.values[i],
		}
	}

	return &models.EstimationResult{
		Topology:  top.Name(),
		Formula:   est.formula,
		Exact:     est.exact,
		Estimates: estimates,
		Inputs:    est.inputs,
	}, nil
}

// Fill returns a copy of t with the estimates of res written into their
// cells. t itself is not modified.
func Fill(t *models.Table, res *models.EstimationResult) (*models.Table, error) {
	filled := t.Clone()
	if err := FillInPlace(filled, res); err != nil {
		return nil, err
	}
	return filled, nil
}

// FillInPlace writes the estimates of res into t. Every estimate is checked
// against t before any cell is written, so a stale result leaves t
// untouched.
func FillInPlace(t *models.Table, res *models.EstimationResult) error {
	for _, e := range res.Estimates {
		if e.Index < 0 || e.Index >= t.Len() {
			return NewEstimationError("fill", res.Topology,
				fmt.Errorf("%w: index %d out of range", ErrStaleResult, e.Index))
		}
		c := t.Cell(e.Index)
		if c.Row != e.Row || c.Col != e.Col {
			return NewEstimationError("fill", res.Topology,
				fmt.Errorf("%w: cell %d is (%s, %s), result expects (%s, %s)", ErrStaleResult, e.Index, c.Row, c.Col, e.Row, e.Col))
		}
		if !c.Value.IsMissing() {
			return NewEstimationError("fill", res.Topology,
				fmt.Errorf("%w: cell %d (%s, %s) is no longer missing", ErrStaleResult, e.Index, c.Row, c.Col))
		}
	}

	for _, e := range res.Estimates {
		if err := t.SetValue(e.Index, models.Number(e.Value)); err != nil {
			return NewEstimationError("fill", res.Topology, err)
		}
	}
	return nil
}
