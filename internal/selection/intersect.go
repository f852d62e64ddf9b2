package selection

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/efts-group/hexsel/internal/model"
)

// Intersect applies Method C: the intersection of the three per-dimension
// top-N rankings. For each rank column the records are stably sorted
// ascending (rank 1 = best, absent ranks last) and the first topN cell
// identifiers form that dimension's top set. Every cell appearing in at
// least two top sets is emitted with its match count and membership
// booleans, sorted descending by match count; ties retain the order in
// which the cells were first encountered in the input. Cells repeating
// across input rows are emitted once per occurrence, matching the
// one-row-per-cell municipal assumption of the rest of the pipeline.
//
// Unlike the other methods, Intersect validates its own schema because it
// is routinely invoked on externally merged subsets: a *model.SchemaError
// naming the absent columns is returned when any of the cell id or rank
// columns is missing.
func Intersect(ds *model.Dataset, topN int) ([]model.IntersectionRecord, error) {
	if topN <= 0 {
		return nil, eris.Errorf("selection: top_n must be positive (got %d)", topN)
	}

	required := []model.Column{
		model.ColCellID,
		model.ColEconActivityRank,
		model.ColPopulationRank,
		model.ColLogisticsRank,
	}
	if missing := ds.MissingColumns(required...); len(missing) > 0 {
		return nil, &model.SchemaError{Missing: missing}
	}

	topEcon := topSet(ds.Records, topN, func(r model.Record) int { return r.EconActivityRank })
	topPop := topSet(ds.Records, topN, func(r model.Record) int { return r.PopulationRank })
	topLog := topSet(ds.Records, topN, func(r model.Record) int { return r.LogisticsRank })

	out := make([]model.IntersectionRecord, 0)
	for _, r := range ds.Records {
		rec := model.IntersectionRecord{
			CellID:            r.CellID,
			InTopEconActivity: topEcon[r.CellID],
			InTopPopulation:   topPop[r.CellID],
			InTopLogistics:    topLog[r.CellID],
		}
		if rec.InTopEconActivity {
			rec.MatchCount++
		}
		if rec.InTopPopulation {
			rec.MatchCount++
		}
		if rec.InTopLogistics {
			rec.MatchCount++
		}
		if rec.MatchCount >= 2 {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchCount > out[j].MatchCount
	})

	return out, nil
}

// topSet returns the cell ids of the topN best-ranked records for one
// dimension. The sort is stable so rank ties keep input order; absent
// (zero) ranks sort last.
func topSet(records []model.Record, topN int, rank func(model.Record) int) map[string]bool {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}

	effective := func(i int) int {
		r := rank(records[i])
		if r <= 0 {
			return math.MaxInt
		}
		return r
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return effective(idx[a]) < effective(idx[b])
	})

	set := make(map[string]bool, topN)
	for i := 0; i < len(idx) && i < topN; i++ {
		set[records[idx[i]].CellID] = true
	}
	return set
}
