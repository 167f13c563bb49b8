package missingplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

func TestClassify(t *testing.T) {
	a := models.MissingCell{Index: 0, Row: "I", Col: "A"}
	b := models.MissingCell{Index: 1, Row: "I", Col: "B"}
	c := models.MissingCell{Index: 3, Row: "II", Col: "A"}
	d := models.MissingCell{Index: 4, Row: "II", Col: "B"}

	tests := []struct {
		name    string
		missing []models.MissingCell
		want    Topology
		wantErr error
	}{
		{name: "none", missing: nil, wantErr: ErrNoMissingValue},
		{name: "one", missing: []models.MissingCell{d}, want: OneMissing{Cell: d}},
		{name: "same row", missing: []models.MissingCell{a, b}, want: TwoSameRow{First: a, Second: b}},
		{name: "same column", missing: []models.MissingCell{a, c}, want: TwoSameCol{First: a, Second: c}},
		{name: "disjoint", missing: []models.MissingCell{a, d}, want: TwoDisjoint{First: a, Second: d}},
		{name: "three", missing: []models.MissingCell{a, b, c}, wantErr: ErrUnsupportedTopology},
		{
			name:    "same coordinates",
			missing: []models.MissingCell{a, {Index: 7, Row: "I", Col: "A"}},
			wantErr: ErrInvalidTopology,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.missing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.missing, got.Missing())
		})
	}
}

func TestClassify_Names(t *testing.T) {
	assert.Equal(t, "one_missing", OneMissing{}.Name())
	assert.Equal(t, "two_same_row", TwoSameRow{}.Name())
	assert.Equal(t, "two_same_col", TwoSameCol{}.Name())
	assert.Equal(t, "two_disjoint", TwoDisjoint{}.Name())
}

func TestClassify_Idempotent(t *testing.T) {
	table := scenarioTable(t, coord{"II", "A"}, coord{"II", "B"})

	first, err := Classify(table.FindMissing())
	require.NoError(t, err)
	second, err := Classify(table.FindMissing())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	est1, err := estimate(table, first, DefaultOptions())
	require.NoError(t, err)
	est2, err := estimate(table, second, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, est1, est2)
}
