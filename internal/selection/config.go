// Package selection implements the three hexagon selection methods and
// the geographic prefilter they share. All functions are pure transforms
// over an in-memory dataset: each returns newly built rows and never
// mutates its input, so the methods may run concurrently over the same
// prefiltered dataset.
package selection

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// GeoFilter restricts a dataset to a state and/or municipality before the
// methods run. An empty field imposes no constraint on that dimension.
type GeoFilter struct {
	State        string `yaml:"state" json:"state,omitempty" mapstructure:"state"`
	Municipality string `yaml:"municipality" json:"municipality,omitempty" mapstructure:"municipality"`
}

// Thresholds holds the optional per-dimension minimum categories for the
// hierarchical filter (Method A). Zero means the dimension is
// unconstrained; valid provided values are 1-4.
type Thresholds struct {
	MinEconActivity int `yaml:"min_econ_activity" json:"min_econ_activity,omitempty" mapstructure:"min_econ_activity"`
	MinPopulation   int `yaml:"min_population" json:"min_population,omitempty" mapstructure:"min_population"`
	MinLogistics    int `yaml:"min_logistics" json:"min_logistics,omitempty" mapstructure:"min_logistics"`
}

// Active reports whether any threshold is provided.
func (t Thresholds) Active() bool {
	return t.MinEconActivity != 0 || t.MinPopulation != 0 || t.MinLogistics != 0
}

// Weights holds the non-negative dimension weights for the composite
// score (Method B). They are normalized to sum to 1 before scoring; the
// all-zero triple means "no preference" and falls back to equal weights.
type Weights struct {
	EconActivity float64 `yaml:"econ_activity" json:"econ_activity" mapstructure:"econ_activity"`
	Population   float64 `yaml:"population" json:"population" mapstructure:"population"`
	Logistics    float64 `yaml:"logistics" json:"logistics" mapstructure:"logistics"`
}

// normalized returns weights scaled to sum to 1, substituting equal
// weights when the sum is zero.
func (w Weights) normalized() Weights {
	total := w.EconActivity + w.Population + w.Logistics
	if total == 0 {
		third := 1.0 / 3.0
		return Weights{EconActivity: third, Population: third, Logistics: third}
	}
	return Weights{
		EconActivity: w.EconActivity / total,
		Population:   w.Population / total,
		Logistics:    w.Logistics / total,
	}
}

// Params bundles the prefilter and per-method parameters for one
// selection run.
type Params struct {
	Geo        GeoFilter  `yaml:"geo" json:"geo" mapstructure:"geo"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds" mapstructure:"thresholds"`
	Weights    Weights    `yaml:"weights" json:"weights" mapstructure:"weights"`
	TopN       int        `yaml:"top_n" json:"top_n" mapstructure:"top_n"`
}

// DefaultParams returns the parameter set the original methodology
// comparison shipped with.
func DefaultParams() Params {
	return Params{
		Thresholds: Thresholds{MinEconActivity: 2, MinPopulation: 2, MinLogistics: 2},
		Weights:    Weights{EconActivity: 0.4, Population: 0.3, Logistics: 0.3},
		TopN:       100,
	}
}

// Validate checks that the parameters are internally consistent.
func (p Params) Validate() error {
	var errs []string

	thresholds := map[string]int{
		"min_econ_activity": p.Thresholds.MinEconActivity,
		"min_population":    p.Thresholds.MinPopulation,
		"min_logistics":     p.Thresholds.MinLogistics,
	}
	for name, v := range thresholds {
		if v < 0 || v > 4 {
			errs = append(errs, fmt.Sprintf("%s must be between 1 and 4 (or 0 for no constraint)", name))
		}
	}

	weights := map[string]float64{
		"econ_activity": p.Weights.EconActivity,
		"population":    p.Weights.Population,
		"logistics":     p.Weights.Logistics,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("weight %s must be >= 0", name))
		}
	}

	if p.TopN <= 0 {
		errs = append(errs, "top_n must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("selection: params validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
