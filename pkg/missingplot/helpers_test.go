package missingplot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

type coord struct {
	row, col string
}

// scenarioTable is the 3x3 additive design I=[10,12,14], II=[9,11,13],
// III=[8,10,12] over columns A, B, C with the given cells masked.
func scenarioTable(t *testing.T, masked ...coord) *models.Table {
	t.Helper()
	values := map[string][]float64{
		"I":   {10, 12, 14},
		"II":  {9, 11, 13},
		"III": {8, 10, 12},
	}
	return buildTable(t, []string{"I", "II", "III"}, []string{"A", "B", "C"},
		func(i, j int, row, col string) float64 { return values[row][j] }, masked...)
}

// additiveTable is an r x c design with value mu + row effect + column
// effect and no interaction.
func additiveTable(t *testing.T, r, c int, masked ...coord) (*models.Table, func(row, col string) float64) {
	t.Helper()
	rows := make([]string, r)
	cols := make([]string, c)
	for i := range rows {
		rows[i] = fmt.Sprintf("r%d", i+1)
	}
	for j := range cols {
		cols[j] = fmt.Sprintf("c%d", j+1)
	}

	truth := make(map[coord]float64)
	value := func(i, j int, row, col string) float64 {
		v := 50 + 3.5*float64(i*i%7) - 2.25*float64(j*3%5)
		truth[coord{row, col}] = v
		return v
	}
	table := buildTable(t, rows, cols, value, masked...)
	return table, func(row, col string) float64 { return truth[coord{row, col}] }
}

func buildTable(t *testing.T, rows, cols []string, value func(i, j int, row, col string) float64, masked ...coord) *models.Table {
	t.Helper()
	mask := make(map[coord]bool)
	for _, m := range masked {
		mask[m] = true
	}

	var cells []models.Cell
	for i, row := range rows {
		for j, col := range cols {
			v := models.Number(value(i, j, row, col))
			if mask[coord{row, col}] {
				v = models.Missing()
			}
			cells = append(cells, models.Cell{Row: row, Col: col, Value: v})
		}
	}

	table, err := models.NewTable(cells)
	require.NoError(t, err)
	return table
}
