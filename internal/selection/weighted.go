package selection

import (
	"sort"

	"github.com/efts-group/hexsel/internal/model"
)

// Weighted applies Method B: a normalized weighted composite score over
// the three category dimensions. Weights are normalized to sum to 1 (the
// all-zero triple falls back to equal weights). Records with any unknown
// category keep a propagated missing score instead of a silent zero; they
// stay in the output, carry scoreNorm 0, and sort after every scored
// record, preserving input order among themselves.
//
// scoreNorm is 100 * score / max(score); when the maximum is zero,
// negative, or undefined the whole column is 0 rather than a division by
// zero. The descending sort is stable, so equal scores retain their
// relative input order and top-K selection is reproducible. No records
// are dropped.
func Weighted(ds *model.Dataset, w Weights) []model.ScoredRecord {
	norm := w.normalized()

	out := make([]model.ScoredRecord, 0, len(ds.Records))
	maxScore := 0.0
	anyScored := false
	for _, r := range ds.Records {
		sr := model.ScoredRecord{Record: r}
		if r.EconActivity.Known() && r.Population.Known() && r.Logistics.Known() {
			sr.HasScore = true
			sr.Score = norm.EconActivity*float64(r.EconActivity) +
				norm.Population*float64(r.Population) +
				norm.Logistics*float64(r.Logistics)
			if !anyScored || sr.Score > maxScore {
				maxScore = sr.Score
			}
			anyScored = true
		}
		out = append(out, sr)
	}

	if anyScored && maxScore > 0 {
		for i := range out {
			if out[i].HasScore {
				out[i].ScoreNorm = 100 * out[i].Score / maxScore
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		// Scored records before unscored ones, then higher scoreNorm first.
		if out[i].HasScore != out[j].HasScore {
			return out[i].HasScore
		}
		return out[i].ScoreNorm > out[j].ScoreNorm
	})

	return out
}
