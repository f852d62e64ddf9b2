package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// Resolution-9 cell over San Francisco, and its resolution-8 parent.
const (
	validRes9 = "8928308280fffff"
	validRes8 = "8828308281fffff"
)

func TestBoundaryClosedRing(t *testing.T) {
	conv := New(DefaultResolution)

	ring, err := conv.Boundary(validRes9)
	require.NoError(t, err)

	// A hexagon boundary has 6 (or 7 for distorted cells) vertices plus
	// the closing vertex.
	assert.GreaterOrEqual(t, len(ring), 4)
	assert.True(t, ring[0].Equal(geom.XY, ring[len(ring)-1]), "ring must be closed")
}

func TestBoundaryLonLatOrder(t *testing.T) {
	conv := New(DefaultResolution)

	ring, err := conv.Boundary(validRes9)
	require.NoError(t, err)

	// The cell is over San Francisco: longitude ~ -122, latitude ~ 37.
	for _, v := range ring {
		assert.InDelta(t, -122.4, v[0], 0.5)
		assert.InDelta(t, 37.8, v[1], 0.5)
	}
}

func TestCentroid(t *testing.T) {
	conv := New(DefaultResolution)

	lat, lng, err := conv.Centroid(validRes9)
	require.NoError(t, err)
	assert.InDelta(t, 37.8, lat, 0.5)
	assert.InDelta(t, -122.4, lng, 0.5)
}

func TestInvalidCellID(t *testing.T) {
	conv := New(DefaultResolution)

	for _, id := range []string{"", "not-a-cell", "zzzzzzzzzzzzzzz"} {
		_, err := conv.Boundary(id)
		require.Error(t, err, "id=%q", id)

		var geomErr *GeometryError
		require.ErrorAs(t, err, &geomErr)
		assert.Equal(t, id, geomErr.CellID)
	}
}

func TestWrongResolution(t *testing.T) {
	conv := New(DefaultResolution)

	_, _, err := conv.Centroid(validRes8)
	require.Error(t, err)

	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Contains(t, geomErr.Reason, "resolution 8")

	// The same identifier is fine for a resolution-8 converter.
	_, _, err = New(8).Centroid(validRes8)
	assert.NoError(t, err)
}

func TestConvertMixedOutcomes(t *testing.T) {
	conv := New(DefaultResolution)

	cells := conv.Convert([]string{validRes9, "bogus", validRes8})
	require.Len(t, cells, 3)

	assert.NoError(t, cells[0].Err)
	assert.NotEmpty(t, cells[0].Boundary)
	assert.NotZero(t, cells[0].Lat)

	assert.Error(t, cells[1].Err)
	assert.Error(t, cells[2].Err)
}
