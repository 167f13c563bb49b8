package missingplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

func TestFill(t *testing.T) {
	table := scenarioTable(t, coord{"II", "A"}, coord{"II", "B"})
	res, err := Estimate(table, DefaultOptions())
	require.NoError(t, err)

	filled, err := Fill(table, res)
	require.NoError(t, err)

	assert.Empty(t, filled.FindMissing())
	i, _ := filled.Lookup("II", "A")
	assert.Equal(t, models.Number(9), filled.Cell(i).Value)
	j, _ := filled.Lookup("II", "B")
	assert.Equal(t, models.Number(11), filled.Cell(j).Value)

	// The source table is untouched.
	assert.Len(t, table.FindMissing(), 2)
}

func TestFillInPlace(t *testing.T) {
	table := scenarioTable(t, coord{"II", "B"})
	res, err := Estimate(table, DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, FillInPlace(table, res))
	assert.Empty(t, table.FindMissing())
	assert.Equal(t, 99.0, table.GrandSum())

	t.Run("applying twice is stale", func(t *testing.T) {
		err := FillInPlace(table, res)
		assert.ErrorIs(t, err, ErrStaleResult)

		var estErr *EstimationError
		require.ErrorAs(t, err, &estErr)
		assert.Equal(t, "fill", estErr.Stage)
	})
}

func TestFillInPlace_StaleResults(t *testing.T) {
	table := scenarioTable(t, coord{"I", "A"}, coord{"III", "C"})

	tests := []struct {
		name      string
		estimates []models.Estimate
	}{
		{
			name:      "index out of range",
			estimates: []models.Estimate{{Index: 42, Row: "I", Col: "A", Value: 1}},
		},
		{
			name:      "negative index",
			estimates: []models.Estimate{{Index: -1, Row: "I", Col: "A", Value: 1}},
		},
		{
			name:      "coordinates moved",
			estimates: []models.Estimate{{Index: 0, Row: "I", Col: "B", Value: 1}},
		},
		{
			name: "second estimate stale",
			estimates: []models.Estimate{
				{Index: 0, Row: "I", Col: "A", Value: 1},
				{Index: 4, Row: "II", Col: "B", Value: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &models.EstimationResult{Topology: TopologyTwoDisjoint, Estimates: tt.estimates}
			err := FillInPlace(table, res)
			assert.ErrorIs(t, err, ErrStaleResult)
			assert.Len(t, table.FindMissing(), 2, "table must be left untouched")
		})
	}
}
