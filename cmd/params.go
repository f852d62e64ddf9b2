package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/efts-group/hexsel/internal/dataset"
	"github.com/efts-group/hexsel/internal/model"
	"github.com/efts-group/hexsel/internal/selection"
)

// addSelectionFlags registers the flags shared by every selection command.
func addSelectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("dataset", "", "dataset path, .csv or .xlsx (default from config)")
	f.String("profile", "", "named parameter profile from the profiles file")
	f.String("state", "", "restrict to one state (case-insensitive)")
	f.String("municipality", "", "restrict to one municipality (case-insensitive)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
}

// resolveParams builds the method parameters from the profile (when named)
// with CLI flag overrides applied on top.
func resolveParams(cmd *cobra.Command) (selection.Params, error) {
	name, _ := cmd.Flags().GetString("profile")

	params := selection.DefaultParams()
	if name != "" {
		if cfg.Dataset.ProfilesPath == "" {
			return params, eris.New("profiles: --profile set but dataset.profiles_path is not configured")
		}
		profiles, err := selection.LoadProfiles(cfg.Dataset.ProfilesPath)
		if err != nil {
			return params, err
		}
		params, err = selection.Profile(profiles, name)
		if err != nil {
			return params, err
		}
	}

	if v, _ := cmd.Flags().GetString("state"); v != "" {
		params.Geo.State = v
	}
	if v, _ := cmd.Flags().GetString("municipality"); v != "" {
		params.Geo.Municipality = v
	}

	if cmd.Flags().Changed("min-econ") {
		params.Thresholds.MinEconActivity, _ = cmd.Flags().GetInt("min-econ")
	}
	if cmd.Flags().Changed("min-pop") {
		params.Thresholds.MinPopulation, _ = cmd.Flags().GetInt("min-pop")
	}
	if cmd.Flags().Changed("min-log") {
		params.Thresholds.MinLogistics, _ = cmd.Flags().GetInt("min-log")
	}

	if cmd.Flags().Changed("w-econ") {
		params.Weights.EconActivity, _ = cmd.Flags().GetFloat64("w-econ")
	}
	if cmd.Flags().Changed("w-pop") {
		params.Weights.Population, _ = cmd.Flags().GetFloat64("w-pop")
	}
	if cmd.Flags().Changed("w-log") {
		params.Weights.Logistics, _ = cmd.Flags().GetFloat64("w-log")
	}

	if cmd.Flags().Changed("top-n") {
		params.TopN, _ = cmd.Flags().GetInt("top-n")
	}

	return params, params.Validate()
}

// loadDataset loads the flagged (or configured) dataset and applies the
// geographic prefilter.
func loadDataset(ctx context.Context, cmd *cobra.Command, geo selection.GeoFilter) (*model.Dataset, error) {
	path, _ := cmd.Flags().GetString("dataset")
	if path == "" {
		if err := cfg.Validate("select"); err != nil {
			return nil, err
		}
		path = cfg.Dataset.Path
	}

	ds, err := dataset.Load(ctx, path, cfg.Dataset.Sheet)
	if err != nil {
		return nil, err
	}

	filtered := selection.Prefilter(ds, geo)
	if filtered.Len() == 0 && ds.Len() > 0 {
		zap.L().Warn("geographic prefilter matched no rows",
			zap.String("state", geo.State),
			zap.String("municipality", geo.Municipality),
		)
	}
	return filtered, nil
}

// datasetPath returns the effective dataset path for run persistence.
func datasetPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("dataset"); path != "" {
		return path
	}
	return cfg.Dataset.Path
}
