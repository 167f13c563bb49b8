package missingplot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateBatch(t *testing.T) {
	designs := []Design{
		{Name: "one", Table: scenarioTable(t, coord{"II", "B"})},
		{Name: "complete", Table: scenarioTable(t)},
		{Name: "row", Table: scenarioTable(t, coord{"II", "A"}, coord{"II", "B"})},
		{Name: "nil"},
	}

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			results := EstimateBatch(context.Background(), designs, DefaultOptions(), workers)
			require.Len(t, results, len(designs))

			for i, d := range designs {
				assert.Equal(t, d.Name, results[i].Name)
			}
			require.NoError(t, results[0].Err)
			assert.Equal(t, 11.0, results[0].Result.Estimates[0].Value)
			assert.ErrorIs(t, results[1].Err, ErrNoMissingValue)
			assert.Nil(t, results[1].Result)
			require.NoError(t, results[2].Err)
			assert.Equal(t, TopologyTwoSameRow, results[2].Result.Topology)
			assert.Error(t, results[3].Err)
		})
	}
}

func TestEstimateBatch_MatchesSequential(t *testing.T) {
	var designs []Design
	for r := 3; r <= 6; r++ {
		for c := 3; c <= 6; c++ {
			table, _ := additiveTable(t, r, c, coord{"r2", "c1"}, coord{"r2", "c3"})
			designs = append(designs, Design{Name: fmt.Sprintf("%dx%d", r, c), Table: table})
		}
	}

	results := EstimateBatch(context.Background(), designs, DefaultOptions(), 4)
	for i, d := range designs {
		want, err := Estimate(d.Table, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, want, results[i].Result, d.Name)
	}
}

func TestEstimateBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	designs := []Design{
		{Name: "a", Table: scenarioTable(t, coord{"II", "B"})},
		{Name: "b", Table: scenarioTable(t, coord{"I", "C"})},
	}
	results := EstimateBatch(ctx, designs, DefaultOptions(), 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Result)
	}
}

func TestItems(t *testing.T) {
	results := EstimateBatch(context.Background(), []Design{
		{Name: "ok", Table: scenarioTable(t, coord{"II", "B"})},
		{Name: "bad", Table: scenarioTable(t)},
	}, DefaultOptions(), 2)

	items := Items(results)
	require.Len(t, items, 2)
	assert.Equal(t, "ok", items[0].Name)
	assert.NotNil(t, items[0].Result)
	assert.Empty(t, items[0].Error)
	assert.Equal(t, "bad", items[1].Name)
	assert.Nil(t, items[1].Result)
	assert.Contains(t, items[1].Error, "no missing value")
}
