package missingplot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

func TestEstimate_Scenarios(t *testing.T) {
	t.Run("one missing", func(t *testing.T) {
		res, err := Estimate(scenarioTable(t, coord{"II", "B"}), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, TopologyOneMissing, res.Topology)
		assert.True(t, res.Exact)
		require.Len(t, res.Estimates, 1)
		assert.Equal(t, models.Estimate{Index: 4, Row: "II", Col: "B", Value: 11}, res.Estimates[0])
		assert.Equal(t, 3, res.Inputs.Rows)
		assert.Equal(t, 3, res.Inputs.Cols)
		assert.Equal(t, 88.0, res.Inputs.Grand)
		assert.Equal(t, map[string]float64{"II": 22}, res.Inputs.RowSums)
		assert.Equal(t, map[string]float64{"B": 22}, res.Inputs.ColSums)
	})

	t.Run("two in the same row", func(t *testing.T) {
		res, err := Estimate(scenarioTable(t, coord{"II", "A"}, coord{"II", "B"}), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, TopologyTwoSameRow, res.Topology)
		assert.Equal(t, FormulaTwoSameRow, res.Formula)
		assert.Equal(t, []models.Estimate{
			{Index: 3, Row: "II", Col: "A", Value: 9},
			{Index: 4, Row: "II", Col: "B", Value: 11},
		}, res.Estimates)
		assert.Equal(t, 79.0, res.Inputs.Grand)
		assert.Equal(t, map[string]float64{"II": 13}, res.Inputs.RowSums)
		assert.Equal(t, map[string]float64{"A": 18, "B": 22}, res.Inputs.ColSums)
	})

	t.Run("two disjoint keeps the single-pass formula", func(t *testing.T) {
		res, err := Estimate(scenarioTable(t, coord{"I", "A"}, coord{"III", "C"}), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, TopologyTwoDisjoint, res.Topology)
		assert.False(t, res.Exact)
		// R1=26 C1=17 R2=18 C2=27 G=77
		assert.Equal(t, (3*26.0+3*17.0-77)/4, res.Estimates[0].Value)
		assert.Equal(t, (3*18.0+3*27.0-77)/4, res.Estimates[1].Value)
		assert.Equal(t, 13.0, res.Estimates[0].Value)
		assert.Equal(t, 14.5, res.Estimates[1].Value)
		assert.NotEqual(t, 10.0, res.Estimates[0].Value)
		assert.NotEqual(t, 12.0, res.Estimates[1].Value)
	})

	t.Run("single row is degenerate", func(t *testing.T) {
		table, err := models.NewTable([]models.Cell{
			{Row: "I", Col: "A", Value: models.Number(10)},
			{Row: "I", Col: "B", Value: models.Missing()},
			{Row: "I", Col: "C", Value: models.Number(14)},
		})
		require.NoError(t, err)

		res, err := Estimate(table, DefaultOptions())
		assert.ErrorIs(t, err, ErrDegenerateDesign)
		assert.Nil(t, res)
	})
}

func TestEstimate_SameColumnFormulas(t *testing.T) {
	masked := []coord{{"I", "B"}, {"II", "B"}}

	t.Run("symmetric recovers the true values", func(t *testing.T) {
		res, err := Estimate(scenarioTable(t, masked...), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, TopologyTwoSameCol, res.Topology)
		assert.Equal(t, FormulaTwoSameColSymmetric, res.Formula)
		assert.True(t, res.Exact)
		assert.Equal(t, 12.0, res.Estimates[0].Value)
		assert.Equal(t, 11.0, res.Estimates[1].Value)
	})

	t.Run("literal reproduces the legacy coefficients", func(t *testing.T) {
		res, err := Estimate(scenarioTable(t, masked...), Options{SameColumnFormula: SameColumnLiteral})
		require.NoError(t, err)

		assert.Equal(t, FormulaTwoSameColLiteral, res.Formula)
		assert.False(t, res.Exact)
		// C=10 R1=24 R2=22 G=76
		assert.Equal(t, (3*24.0+2*10.0+22-76)/2, res.Estimates[0].Value)
		assert.Equal(t, (3*22.0+2*10.0+24-76)/2, res.Estimates[1].Value)
		assert.Equal(t, 19.0, res.Estimates[0].Value)
		assert.Equal(t, 17.0, res.Estimates[1].Value)
	})
}

func TestEstimate_AdditiveExactness(t *testing.T) {
	for _, size := range [][2]int{{2, 2}, {2, 5}, {3, 3}, {4, 6}, {7, 3}} {
		r, c := size[0], size[1]
		t.Run(fmt.Sprintf("one missing %dx%d", r, c), func(t *testing.T) {
			for i := 1; i <= r; i++ {
				for j := 1; j <= c; j++ {
					cell := coord{fmt.Sprintf("r%d", i), fmt.Sprintf("c%d", j)}
					table, truth := additiveTable(t, r, c, cell)
					res, err := Estimate(table, DefaultOptions())
					require.NoError(t, err)
					assert.InDelta(t, truth(cell.row, cell.col), res.Estimates[0].Value, 1e-9, "cell %v", cell)
				}
			}
		})
	}

	for _, size := range [][2]int{{2, 3}, {3, 3}, {5, 4}, {4, 7}} {
		r, c := size[0], size[1]
		t.Run(fmt.Sprintf("same row %dx%d", r, c), func(t *testing.T) {
			a, b := coord{"r2", "c1"}, coord{"r2", fmt.Sprintf("c%d", c)}
			table, truth := additiveTable(t, r, c, a, b)
			res, err := Estimate(table, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, TopologyTwoSameRow, res.Topology)
			assert.InDelta(t, truth(a.row, a.col), res.Estimates[0].Value, 1e-9)
			assert.InDelta(t, truth(b.row, b.col), res.Estimates[1].Value, 1e-9)
		})
	}

	for _, size := range [][2]int{{3, 2}, {3, 3}, {4, 5}, {7, 4}} {
		r, c := size[0], size[1]
		t.Run(fmt.Sprintf("same column %dx%d", r, c), func(t *testing.T) {
			a, b := coord{"r1", "c2"}, coord{fmt.Sprintf("r%d", r), "c2"}
			table, truth := additiveTable(t, r, c, a, b)
			res, err := Estimate(table, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, TopologyTwoSameCol, res.Topology)
			assert.InDelta(t, truth(a.row, a.col), res.Estimates[0].Value, 1e-9)
			assert.InDelta(t, truth(b.row, b.col), res.Estimates[1].Value, 1e-9)
		})
	}
}

func TestEstimate_DisjointMatchesFormula(t *testing.T) {
	a, b := coord{"r1", "c2"}, coord{"r4", "c3"}
	table, _ := additiveTable(t, 5, 4, a, b)

	res, err := Estimate(table, DefaultOptions())
	require.NoError(t, err)

	r, c, G := 5.0, 4.0, table.GrandSum()
	want1 := (c*table.RowSum("r1") + r*table.ColSum("c2") - G) / ((r - 1) * (c - 1))
	want2 := (c*table.RowSum("r4") + r*table.ColSum("c3") - G) / ((r - 1) * (c - 1))
	assert.Equal(t, want1, res.Estimates[0].Value)
	assert.Equal(t, want2, res.Estimates[1].Value)
}

func TestEstimate_DegenerateDesigns(t *testing.T) {
	tests := []struct {
		name   string
		r, c   int
		masked []coord
	}{
		{name: "one missing, single row", r: 1, c: 4, masked: []coord{{"r1", "c2"}}},
		{name: "one missing, single column", r: 4, c: 1, masked: []coord{{"r3", "c1"}}},
		{name: "same row, two columns", r: 4, c: 2, masked: []coord{{"r2", "c1"}, {"r2", "c2"}}},
		{name: "same row, single row", r: 1, c: 4, masked: []coord{{"r1", "c1"}, {"r1", "c3"}}},
		{name: "same column, two rows", r: 2, c: 4, masked: []coord{{"r1", "c3"}, {"r2", "c3"}}},
		{name: "same column, single column", r: 4, c: 1, masked: []coord{{"r1", "c1"}, {"r3", "c1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, _ := additiveTable(t, tt.r, tt.c, tt.masked...)
			res, err := Estimate(table, DefaultOptions())
			assert.ErrorIs(t, err, ErrDegenerateDesign)
			assert.Nil(t, res)
		})
	}
}

func TestEstimate_FormulaRejectsMismatchedPairs(t *testing.T) {
	table := scenarioTable(t, coord{"I", "A"}, coord{"II", "B"})
	a := models.MissingCell{Index: 0, Row: "I", Col: "A"}
	b := models.MissingCell{Index: 4, Row: "II", Col: "B"}

	for _, top := range []Topology{
		TwoSameRow{First: a, Second: b},
		TwoSameCol{First: a, Second: b},
		TwoDisjoint{First: a, Second: models.MissingCell{Index: 1, Row: "I", Col: "B"}},
	} {
		_, err := estimate(table, top, DefaultOptions())
		assert.ErrorIs(t, err, ErrUnsupportedTopology, top.Name())
	}
}

func TestEstimate_NumericOverflow(t *testing.T) {
	tests := []struct {
		name  string
		cells []models.Cell
	}{
		{
			name: "grand sum overflows",
			cells: []models.Cell{
				{Row: "I", Col: "A", Value: models.Number(1e308)},
				{Row: "I", Col: "B", Value: models.Number(1e308)},
				{Row: "II", Col: "A", Value: models.Number(1e308)},
				{Row: "II", Col: "B", Value: models.Missing()},
			},
		},
		{
			// G, R and C are finite but r*R and c*C overflow with opposite signs.
			name: "estimate overflows",
			cells: []models.Cell{
				{Row: "I", Col: "A", Value: models.Number(1)},
				{Row: "I", Col: "B", Value: models.Number(-9e307)},
				{Row: "II", Col: "A", Value: models.Number(9e307)},
				{Row: "II", Col: "B", Value: models.Missing()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := models.NewTable(tt.cells)
			require.NoError(t, err)

			res, err := Estimate(table, DefaultOptions())
			assert.ErrorIs(t, err, ErrNumericOverflow)
			assert.Nil(t, res)

			var estErr *EstimationError
			require.ErrorAs(t, err, &estErr)
			assert.Equal(t, "formula", estErr.Stage)
		})
	}
}
