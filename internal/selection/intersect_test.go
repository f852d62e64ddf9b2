package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efts-group/hexsel/internal/model"
)

func TestIntersectEndToEndExample(t *testing.T) {
	// M1: ranks (econ=1, pop=5, log=2); M2: ranks (econ=8, pop=1, log=9).
	ds := testDataset(
		model.Record{CellID: "H1", EconActivityRank: 1, PopulationRank: 5, LogisticsRank: 2},
		model.Record{CellID: "H2", EconActivityRank: 8, PopulationRank: 1, LogisticsRank: 9},
	)

	got, err := Intersect(ds, 1)
	require.NoError(t, err)

	// H1 is top-1 in econ and logistics (matchCount 2); H2 only in
	// population (matchCount 1) and is excluded.
	require.Len(t, got, 1)
	assert.Equal(t, "H1", got[0].CellID)
	assert.Equal(t, 2, got[0].MatchCount)
	assert.True(t, got[0].InTopEconActivity)
	assert.False(t, got[0].InTopPopulation)
	assert.True(t, got[0].InTopLogistics)
}

func TestIntersectMatchCountRange(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivityRank: 1, PopulationRank: 1, LogisticsRank: 1},
		model.Record{CellID: "b", EconActivityRank: 2, PopulationRank: 2, LogisticsRank: 5},
		model.Record{CellID: "c", EconActivityRank: 5, PopulationRank: 5, LogisticsRank: 2},
		model.Record{CellID: "d", EconActivityRank: 9, PopulationRank: 9, LogisticsRank: 9},
	)

	got, err := Intersect(ds, 2)
	require.NoError(t, err)

	for _, r := range got {
		assert.GreaterOrEqual(t, r.MatchCount, 2)
		assert.LessOrEqual(t, r.MatchCount, 3)
		if r.MatchCount == 3 {
			assert.True(t, r.InTopEconActivity)
			assert.True(t, r.InTopPopulation)
			assert.True(t, r.InTopLogistics)
		}
	}

	// All three top sets contain "a"; it sorts first.
	require.NotEmpty(t, got)
	assert.Equal(t, "a", got[0].CellID)
	assert.Equal(t, 3, got[0].MatchCount)
}

func TestIntersectTopNMonotonic(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivityRank: 1, PopulationRank: 4, LogisticsRank: 2},
		model.Record{CellID: "b", EconActivityRank: 2, PopulationRank: 3, LogisticsRank: 4},
		model.Record{CellID: "c", EconActivityRank: 3, PopulationRank: 2, LogisticsRank: 3},
		model.Record{CellID: "d", EconActivityRank: 4, PopulationRank: 1, LogisticsRank: 1},
	)

	prev := 0
	for topN := 1; topN <= 5; topN++ {
		got, err := Intersect(ds, topN)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), prev, "topN=%d", topN)
		prev = len(got)
	}
}

func TestIntersectMissingColumns(t *testing.T) {
	ds := model.NewDataset(
		[]model.Record{{CellID: "a"}},
		model.ColCellID, model.ColEconActivityRank,
	)

	_, err := Intersect(ds, 10)
	require.Error(t, err)

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []model.Column{model.ColPopulationRank, model.ColLogisticsRank}, schemaErr.Missing)
}

func TestIntersectInvalidTopN(t *testing.T) {
	ds := testDataset()
	_, err := Intersect(ds, 0)
	assert.Error(t, err)
	_, err = Intersect(ds, -3)
	assert.Error(t, err)
}

func TestIntersectDuplicateCellsNotDeduplicated(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivityRank: 1, PopulationRank: 1, LogisticsRank: 1},
		model.Record{CellID: "a", EconActivityRank: 1, PopulationRank: 1, LogisticsRank: 1},
		model.Record{CellID: "b", EconActivityRank: 9, PopulationRank: 9, LogisticsRank: 9},
	)

	got, err := Intersect(ds, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].CellID)
	assert.Equal(t, "a", got[1].CellID)
}

func TestIntersectAbsentRanksSortLast(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivityRank: 0, PopulationRank: 1, LogisticsRank: 1},
		model.Record{CellID: "b", EconActivityRank: 1, PopulationRank: 2, LogisticsRank: 2},
	)

	got, err := Intersect(ds, 1)
	require.NoError(t, err)

	// "a" has no econ rank, so "b" takes the econ top slot; "a" still
	// matches on population and logistics.
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].CellID)
	assert.False(t, got[0].InTopEconActivity)
}

func TestIntersectEmptyResultIsValid(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivityRank: 1, PopulationRank: 9, LogisticsRank: 9},
		model.Record{CellID: "b", EconActivityRank: 9, PopulationRank: 1, LogisticsRank: 9},
		model.Record{CellID: "c", EconActivityRank: 9, PopulationRank: 9, LogisticsRank: 1},
	)

	got, err := Intersect(ds, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
