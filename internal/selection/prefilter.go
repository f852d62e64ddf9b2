package selection

import (
	"golang.org/x/text/cases"

	"github.com/efts-group/hexsel/internal/model"
)

// Prefilter returns the subset of the dataset matching all provided
// geographic filters, in the original row order. Matching is exact after
// Unicode case folding, so accented state and municipality names match
// regardless of letter case. An empty result is a valid outcome.
func Prefilter(ds *model.Dataset, f GeoFilter) *model.Dataset {
	if f.State == "" && f.Municipality == "" {
		return ds
	}

	// A Caser is stateful, so build one per call rather than sharing.
	fold := cases.Fold()
	state := fold.String(f.State)
	municipality := fold.String(f.Municipality)

	out := make([]model.Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if f.State != "" && fold.String(r.State) != state {
			continue
		}
		if f.Municipality != "" && fold.String(r.Municipality) != municipality {
			continue
		}
		out = append(out, r)
	}
	return model.NewDataset(out, ds.Columns()...)
}
