package missingplot

import (
	"fmt"
	"math"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Formula names reported in results.
const (
	FormulaOneMissing          = "(r*R + c*C - G) / ((r-1)(c-1))"
	FormulaTwoSameRow          = "(r*R + (c-1)*C1 + C2 - G) / ((r-1)(c-2))"
	FormulaTwoSameColSymmetric = "(c*C + (r-1)*R1 + R2 - G) / ((r-2)(c-1))"
	FormulaTwoSameColLiteral   = "(c*R1 + (r-1)*C + R2 - G) / ((r-2)(c-1))"
	FormulaTwoDisjoint         = "(c*Ri + r*Ci - G) / ((r-1)(c-1))"
)

// estimation is what a formula hands to the assembler.
type estimation struct {
	values  []float64
	inputs  models.Inputs
	formula string
	exact   bool
}

// estimate applies the formula matching top to t.
func estimate(t *models.Table, top Topology, opts Options) (*estimation, error) {
	in := models.Inputs{
		Rows:    t.RowCount(),
		Cols:    t.ColCount(),
		Grand:   t.GrandSum(),
		RowSums: make(map[string]float64),
		ColSums: make(map[string]float64),
	}

	if !finite(in.Grand) {
		return nil, fmt.Errorf("%w: grand sum is %v", ErrNumericOverflow, in.Grand)
	}

	var (
		est *estimation
		err error
	)
	switch top := top.(type) {
	case OneMissing:
		est, err = estimateOne(t, top, in)
	case TwoSameRow:
		est, err = estimateSameRow(t, top, in)
	case TwoSameCol:
		est, err = estimateSameCol(t, top, in, opts.sameColumn())
	case TwoDisjoint:
		est, err = estimateDisjoint(t, top, in)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTopology, top)
	}
	if err != nil {
		return nil, err
	}
	if err := checkFinite(est); err != nil {
		return nil, err
	}
	return est, nil
}

// checkFinite rejects an estimation whose sums or values overflowed.
func checkFinite(est *estimation) error {
	for label, s := range est.inputs.RowSums {
		if !finite(s) {
			return fmt.Errorf("%w: sum of row %s is %v", ErrNumericOverflow, label, s)
		}
	}
	for label, s := range est.inputs.ColSums {
		if !finite(s) {
			return fmt.Errorf("%w: sum of column %s is %v", ErrNumericOverflow, label, s)
		}
	}
	for i, v := range est.values {
		if !finite(v) {
			return fmt.Errorf("%w: estimate %d is %v", ErrNumericOverflow, i+1, v)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// denominator returns a*b as a divisor, rejecting non-positive products.
func denominator(a, b int, in models.Inputs) (float64, error) {
	d := a * b
	if d <= 0 {
		return 0, fmt.Errorf("%w: %d rows and %d columns give a zero or negative denominator", ErrDegenerateDesign, in.Rows, in.Cols)
	}
	return float64(d), nil
}

func estimateOne(t *models.Table, top OneMissing, in models.Inputs) (*estimation, error) {
	r, c, G := float64(in.Rows), float64(in.Cols), in.Grand
	d, err := denominator(in.Rows-1, in.Cols-1, in)
	if err != nil {
		return nil, err
	}

	R := rowSum(t, &in, top.Cell.Row)
	C := colSum(t, &in, top.Cell.Col)

	x := (r*R + c*C - G) / d
	return &estimation{values: []float64{x}, inputs: in, formula: FormulaOneMissing, exact: true}, nil
}

func estimateSameRow(t *models.Table, top TwoSameRow, in models.Inputs) (*estimation, error) {
	if top.First.Row != top.Second.Row || top.First.Col == top.Second.Col {
		return nil, fmt.Errorf("%w: cells %d and %d do not share only a row", ErrUnsupportedTopology, top.First.Index, top.Second.Index)
	}
	r, c, G := float64(in.Rows), float64(in.Cols), in.Grand
	d, err := denominator(in.Rows-1, in.Cols-2, in)
	if err != nil {
		return nil, err
	}

	R := rowSum(t, &in, top.First.Row)
	C1 := colSum(t, &in, top.First.Col)
	C2 := colSum(t, &in, top.Second.Col)

	x1 := (r*R + (c-1)*C1 + C2 - G) / d
	x2 := (r*R + C1 + (c-1)*C2 - G) / d
	return &estimation{values: []float64{x1, x2}, inputs: in, formula: FormulaTwoSameRow, exact: true}, nil
}

func estimateSameCol(t *models.Table, top TwoSameCol, in models.Inputs, variant SameColumnFormula) (*estimation, error) {
	if top.First.Col != top.Second.Col || top.First.Row == top.Second.Row {
		return nil, fmt.Errorf("%w: cells %d and %d do not share only a column", ErrUnsupportedTopology, top.First.Index, top.Second.Index)
	}
	r, c, G := float64(in.Rows), float64(in.Cols), in.Grand
	d, err := denominator(in.Rows-2, in.Cols-1, in)
	if err != nil {
		return nil, err
	}

	C := colSum(t, &in, top.First.Col)
	R1 := rowSum(t, &in, top.First.Row)
	R2 := rowSum(t, &in, top.Second.Row)

	var x1, x2 float64
	switch variant {
	case SameColumnLiteral:
		x1 = (c*R1 + (r-1)*C + R2 - G) / d
		x2 = (c*R2 + (r-1)*C + R1 - G) / d
		return &estimation{values: []float64{x1, x2}, inputs: in, formula: FormulaTwoSameColLiteral, exact: false}, nil
	case SameColumnSymmetric:
		x1 = (c*C + (r-1)*R1 + R2 - G) / d
		x2 = (c*C + R1 + (r-1)*R2 - G) / d
		return &estimation{values: []float64{x1, x2}, inputs: in, formula: FormulaTwoSameColSymmetric, exact: true}, nil
	default:
		return nil, fmt.Errorf("invalid same-column formula: %s", variant)
	}
}

// estimateDisjoint treats each missing cell on its own, using only its row
// and column sums. It is a single-pass approximation: with two unknowns it
// does not reproduce additive data.
func estimateDisjoint(t *models.Table, top TwoDisjoint, in models.Inputs) (*estimation, error) {
	if top.First.Row == top.Second.Row || top.First.Col == top.Second.Col {
		return nil, fmt.Errorf("%w: cells %d and %d share a row or column", ErrUnsupportedTopology, top.First.Index, top.Second.Index)
	}
	r, c, G := float64(in.Rows), float64(in.Cols), in.Grand
	d, err := denominator(in.Rows-1, in.Cols-1, in)
	if err != nil {
		return nil, err
	}

	R1 := rowSum(t, &in, top.First.Row)
	C1 := colSum(t, &in, top.First.Col)
	R2 := rowSum(t, &in, top.Second.Row)
	C2 := colSum(t, &in, top.Second.Col)

	x1 := (c*R1 + r*C1 - G) / d
	x2 := (c*R2 + r*C2 - G) / d
	return &estimation{values: []float64{x1, x2}, inputs: in, formula: FormulaTwoDisjoint, exact: false}, nil
}

func rowSum(t *models.Table, in *models.Inputs, row string) float64 {
	s := t.RowSum(row)
	in.RowSums[row] = s
	return s
}

func colSum(t *models.Table, in *models.Inputs, col string) float64 {
	s := t.ColSum(col)
	in.ColSums[col] = s
	return s
}
