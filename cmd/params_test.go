package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efts-group/hexsel/internal/config"
	"github.com/efts-group/hexsel/internal/selection"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addSelectionFlags(cmd)
	f := cmd.Flags()
	f.Int("min-econ", 0, "")
	f.Int("min-pop", 0, "")
	f.Int("min-log", 0, "")
	f.Float64("w-econ", 0, "")
	f.Float64("w-pop", 0, "")
	f.Float64("w-log", 0, "")
	f.Int("top-n", 0, "")
	return cmd
}

func TestResolveParamsDefaults(t *testing.T) {
	cfg = &config.Config{}
	cmd := newParamsCmd()

	params, err := resolveParams(cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, params.Thresholds.MinEconActivity)
	assert.InDelta(t, 0.4, params.Weights.EconActivity, 0.001)
	assert.Equal(t, 100, params.TopN)
}

func TestResolveParamsFlagOverrides(t *testing.T) {
	cfg = &config.Config{}
	cmd := newParamsCmd()
	require.NoError(t, cmd.Flags().Set("min-econ", "4"))
	require.NoError(t, cmd.Flags().Set("w-log", "0.9"))
	require.NoError(t, cmd.Flags().Set("top-n", "25"))
	require.NoError(t, cmd.Flags().Set("state", "Jalisco"))

	params, err := resolveParams(cmd)
	require.NoError(t, err)
	assert.Equal(t, 4, params.Thresholds.MinEconActivity)
	// Unchanged thresholds keep their defaults.
	assert.Equal(t, 2, params.Thresholds.MinPopulation)
	assert.InDelta(t, 0.9, params.Weights.Logistics, 0.001)
	assert.Equal(t, 25, params.TopN)
	assert.Equal(t, "Jalisco", params.Geo.State)
}

func TestResolveParamsExplicitZeroThreshold(t *testing.T) {
	cfg = &config.Config{}
	cmd := newParamsCmd()
	// Setting a threshold to 0 removes the default constraint.
	require.NoError(t, cmd.Flags().Set("min-econ", "0"))

	params, err := resolveParams(cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, params.Thresholds.MinEconActivity)
	assert.Equal(t, 2, params.Thresholds.MinPopulation)
}

func TestResolveParamsInvalid(t *testing.T) {
	cfg = &config.Config{}
	cmd := newParamsCmd()
	require.NoError(t, cmd.Flags().Set("min-econ", "7"))

	_, err := resolveParams(cmd)
	assert.Error(t, err)
}

func TestResolveParamsProfile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
profiles:
  strict:
    thresholds:
      min_econ_activity: 4
      min_population: 3
      min_logistics: 3
    top_n: 10
`
	path := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg = &config.Config{}
	cfg.Dataset.ProfilesPath = path
	cmd := newParamsCmd()
	require.NoError(t, cmd.Flags().Set("profile", "strict"))

	params, err := resolveParams(cmd)
	require.NoError(t, err)
	assert.Equal(t, 4, params.Thresholds.MinEconActivity)
	assert.Equal(t, 10, params.TopN)
}

func TestLoadDatasetRequiresPath(t *testing.T) {
	cfg = &config.Config{}
	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = "hexsel.db"
	cfg.Grid.Resolution = 9
	cfg.Fetch.TimeoutSecs = 60
	cmd := newParamsCmd()

	_, err := loadDataset(context.Background(), cmd, selection.GeoFilter{})
	assert.ErrorContains(t, err, "dataset.path is required")
}

func TestResolveParamsProfileWithoutPath(t *testing.T) {
	cfg = &config.Config{}
	cmd := newParamsCmd()
	require.NoError(t, cmd.Flags().Set("profile", "strict"))

	_, err := resolveParams(cmd)
	assert.ErrorContains(t, err, "profiles_path")
}
