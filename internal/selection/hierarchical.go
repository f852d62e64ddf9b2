package selection

import (
	"github.com/efts-group/hexsel/internal/model"
)

// Hierarchical applies Method A: a boolean AND of the provided minimum
// category thresholds. A record survives only if it satisfies every
// provided threshold; a dimension with no threshold imposes no
// constraint. Records whose category is unknown fail any threshold
// applied to that dimension. The result retains the input row order; no
// ranking is introduced. With no thresholds provided the input dataset is
// returned unchanged.
func Hierarchical(ds *model.Dataset, t Thresholds) *model.Dataset {
	if !t.Active() {
		return ds
	}

	out := make([]model.Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if t.MinEconActivity != 0 && !r.EconActivity.AtLeast(t.MinEconActivity) {
			continue
		}
		if t.MinPopulation != 0 && !r.Population.AtLeast(t.MinPopulation) {
			continue
		}
		if t.MinLogistics != 0 && !r.Logistics.AtLeast(t.MinLogistics) {
			continue
		}
		out = append(out, r)
	}
	return model.NewDataset(out, ds.Columns()...)
}
