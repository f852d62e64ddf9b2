package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efts-group/hexsel/internal/model"
)

func TestWeightedScoreNormBounds(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivity: model.CategoryHigh, Population: model.CategoryMedium, Logistics: model.CategoryTop},
		model.Record{CellID: "b", EconActivity: model.CategoryLow, Population: model.CategoryTop, Logistics: model.CategoryLow},
		model.Record{CellID: "c", EconActivity: model.CategoryMedium, Population: model.CategoryMedium, Logistics: model.CategoryMedium},
	)

	got := Weighted(ds, Weights{EconActivity: 0.4, Population: 0.3, Logistics: 0.3})
	require.Len(t, got, 3)

	for _, r := range got {
		assert.GreaterOrEqual(t, r.ScoreNorm, 0.0)
		assert.LessOrEqual(t, r.ScoreNorm, 100.0)
	}
	// The best record is exactly 100.
	assert.InDelta(t, 100.0, got[0].ScoreNorm, 1e-9)
}

func TestWeightedZeroWeightsEqualFallback(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivity: model.CategoryHigh, Population: model.CategoryMedium, Logistics: model.CategoryTop},
		model.Record{CellID: "b", EconActivity: model.CategoryLow, Population: model.CategoryTop, Logistics: model.CategoryLow},
	)

	zero := Weighted(ds, Weights{})
	equal := Weighted(ds, Weights{EconActivity: 1, Population: 1, Logistics: 1})
	assert.Equal(t, equal, zero)
}

func TestWeightedEndToEndExample(t *testing.T) {
	// Two municipalities: M1 (econ=3, pop=2, log=4), M2 (econ=1, pop=4, log=1).
	ds := testDataset(
		model.Record{CellID: "H1", Municipality: "M1", EconActivity: model.CategoryHigh, Population: model.CategoryMedium, Logistics: model.CategoryTop},
		model.Record{CellID: "H2", Municipality: "M2", EconActivity: model.CategoryLow, Population: model.CategoryTop, Logistics: model.CategoryLow},
	)

	got := Weighted(ds, Weights{EconActivity: 1, Population: 1, Logistics: 1})
	require.Len(t, got, 2)

	assert.Equal(t, "H1", got[0].CellID)
	assert.InDelta(t, 3.0, got[0].Score, 1e-9)
	assert.InDelta(t, 100.0, got[0].ScoreNorm, 1e-9)

	assert.Equal(t, "H2", got[1].CellID)
	assert.InDelta(t, 2.0, got[1].Score, 1e-9)
	assert.InDelta(t, 66.67, got[1].ScoreNorm, 0.01)
}

func TestWeightedMissingCategoryPropagates(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivity: model.CategoryUnknown, Population: model.CategoryTop, Logistics: model.CategoryTop},
		model.Record{CellID: "b", EconActivity: model.CategoryLow, Population: model.CategoryLow, Logistics: model.CategoryLow},
	)

	got := Weighted(ds, Weights{EconActivity: 1, Population: 1, Logistics: 1})
	require.Len(t, got, 2)

	// The scored record ranks first even with the lowest categories; the
	// unscored record is kept, unranked, with a zero normalized score.
	assert.Equal(t, "b", got[0].CellID)
	assert.True(t, got[0].HasScore)
	assert.Equal(t, "a", got[1].CellID)
	assert.False(t, got[1].HasScore)
	assert.Zero(t, got[1].ScoreNorm)
}

func TestWeightedStableTieBreak(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivity: model.CategoryMedium, Population: model.CategoryMedium, Logistics: model.CategoryMedium},
		model.Record{CellID: "b", EconActivity: model.CategoryMedium, Population: model.CategoryMedium, Logistics: model.CategoryMedium},
		model.Record{CellID: "c", EconActivity: model.CategoryMedium, Population: model.CategoryMedium, Logistics: model.CategoryMedium},
	)

	got := Weighted(ds, Weights{EconActivity: 1, Population: 1, Logistics: 1})
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].CellID)
	assert.Equal(t, "b", got[1].CellID)
	assert.Equal(t, "c", got[2].CellID)
}

func TestWeightedIdempotent(t *testing.T) {
	ds := testDataset(
		model.Record{CellID: "a", EconActivity: model.CategoryHigh, Population: model.CategoryLow, Logistics: model.CategoryTop},
		model.Record{CellID: "b", EconActivity: model.CategoryLow, Population: model.CategoryTop, Logistics: model.CategoryLow},
		model.Record{CellID: "c", EconActivity: model.CategoryTop, Population: model.CategoryTop, Logistics: model.CategoryTop},
	)
	w := Weights{EconActivity: 0.5, Population: 0.2, Logistics: 0.3}

	first := Weighted(ds, w)

	// Re-rank the already ranked records, ignoring the added columns.
	reranked := make([]model.Record, len(first))
	for i, r := range first {
		reranked[i] = r.Record
	}
	second := Weighted(model.NewDataset(reranked, ds.Columns()...), w)

	assert.Equal(t, first, second)
}

func TestWeightedEmptyDataset(t *testing.T) {
	got := Weighted(testDataset(), Weights{EconActivity: 1, Population: 1, Logistics: 1})
	assert.Empty(t, got)
}
