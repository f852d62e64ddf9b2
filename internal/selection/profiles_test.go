package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesYAML = `profiles:
  conservative:
    thresholds:
      min_econ_activity: 3
      min_population: 3
      min_logistics: 3
    weights:
      econ_activity: 0.5
      population: 0.25
      logistics: 0.25
    top_n: 50
  broad:
    geo:
      state: Yucatán
    top_n: 250
`

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfiles(t *testing.T) {
	profiles, err := LoadProfiles(writeProfiles(t, profilesYAML))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	c := profiles["conservative"]
	assert.Equal(t, 3, c.Thresholds.MinEconActivity)
	assert.InDelta(t, 0.5, c.Weights.EconActivity, 1e-9)
	assert.Equal(t, 50, c.TopN)

	b := profiles["broad"]
	assert.Equal(t, "Yucatán", b.Geo.State)
	assert.Equal(t, 250, b.TopN)
	assert.False(t, b.Thresholds.Active())
}

func TestLoadProfilesOmittedTopNInheritsDefault(t *testing.T) {
	profiles, err := LoadProfiles(writeProfiles(t, "profiles:\n  thresholds-only:\n    thresholds:\n      min_econ_activity: 3\n"))
	require.NoError(t, err)

	p := profiles["thresholds-only"]
	assert.Equal(t, DefaultParams().TopN, p.TopN)
	assert.Equal(t, 3, p.Thresholds.MinEconActivity)
}

func TestLoadProfilesInvalidParams(t *testing.T) {
	_, err := LoadProfiles(writeProfiles(t, "profiles:\n  bad:\n    top_n: -5\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad")
}

func TestLoadProfilesMissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProfileLookup(t *testing.T) {
	profiles := map[string]Params{"x": {TopN: 7}}

	p, err := Profile(profiles, "x")
	require.NoError(t, err)
	assert.Equal(t, 7, p.TopN)

	p, err = Profile(profiles, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)

	_, err = Profile(profiles, "missing")
	assert.Error(t, err)
}
