package missingplot

import (
	"fmt"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Topology names accepted by the estimators.
const (
	TopologyOneMissing  = "one_missing"
	TopologyTwoSameRow  = "two_same_row"
	TopologyTwoSameCol  = "two_same_col"
	TopologyTwoDisjoint = "two_disjoint"
)

// Topology is the arrangement of the missing cells of a table. It is
// implemented only by OneMissing, TwoSameRow, TwoSameCol and TwoDisjoint.
type Topology interface {
	Name() string
	Missing() []models.MissingCell
	topology()
}

// OneMissing is a table with a single missing cell.
type OneMissing struct {
	Cell models.MissingCell
}

// TwoSameRow is a pair of missing cells sharing a row.
type TwoSameRow struct {
	First, Second models.MissingCell
}

// TwoSameCol is a pair of missing cells sharing a column.
type TwoSameCol struct {
	First, Second models.MissingCell
}

// TwoDisjoint is a pair of missing cells sharing neither row nor column.
type TwoDisjoint struct {
	First, Second models.MissingCell
}

func (OneMissing) Name() string  { return TopologyOneMissing }
func (TwoSameRow) Name() string  { return TopologyTwoSameRow }
func (TwoSameCol) Name() string  { return TopologyTwoSameCol }
func (TwoDisjoint) Name() string { return TopologyTwoDisjoint }

func (t OneMissing) Missing() []models.MissingCell  { return []models.MissingCell{t.Cell} }
func (t TwoSameRow) Missing() []models.MissingCell  { return []models.MissingCell{t.First, t.Second} }
func (t TwoSameCol) Missing() []models.MissingCell  { return []models.MissingCell{t.First, t.Second} }
func (t TwoDisjoint) Missing() []models.MissingCell { return []models.MissingCell{t.First, t.Second} }

func (OneMissing) topology()  {}
func (TwoSameRow) topology()  {}
func (TwoSameCol) topology()  {}
func (TwoDisjoint) topology() {}

// Classify determines the topology of the missing cells of a table, as
// returned by Table.FindMissing.
func Classify(missing []models.MissingCell) (Topology, error) {
	switch len(missing) {
	case 0:
		return nil, ErrNoMissingValue
	case 1:
		return OneMissing{Cell: missing[0]}, nil
	case 2:
	default:
		return nil, fmt.Errorf("%w: %d missing cells, at most 2 are supported", ErrUnsupportedTopology, len(missing))
	}

	a, b := missing[0], missing[1]
	sameRow := a.Row == b.Row
	sameCol := a.Col == b.Col
	switch {
	case sameRow && sameCol:
		return nil, fmt.Errorf("%w: cells %d and %d are both (%s, %s)", ErrInvalidTopology, a.Index, b.Index, a.Row, a.Col)
	case sameRow:
		return TwoSameRow{First: a, Second: b}, nil
	case sameCol:
		return TwoSameCol{First: a, Second: b}, nil
	default:
		return TwoDisjoint{First: a, Second: b}, nil
	}
}
