package hexgrid

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygon(t *testing.T) {
	conv := New(DefaultResolution)

	poly, err := conv.Polygon(validRes9)
	require.NoError(t, err)
	assert.Equal(t, 4326, poly.SRID())
	assert.GreaterOrEqual(t, poly.LinearRing(0).NumCoords(), 4)
}

func TestPolygonInvalid(t *testing.T) {
	_, err := New(DefaultResolution).Polygon("bogus")
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
}

func TestFeatureCollection(t *testing.T) {
	conv := New(DefaultResolution)
	cells := conv.Convert([]string{validRes9, "bogus"})

	fc, err := FeatureCollection(cells, func(cellID string) map[string]any {
		return map[string]any{"score_norm": 100.0}
	})
	require.NoError(t, err)

	// The failed cell is skipped, not silently fabricated.
	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, validRes9, f.Properties["cell_id"])
	assert.Equal(t, 100.0, f.Properties["score_norm"])

	data, err := MarshalFeatureCollection(fc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
}

func TestWriteShapefile(t *testing.T) {
	conv := New(DefaultResolution)
	cells := conv.Convert([]string{validRes9, "bogus"})

	path := filepath.Join(t.TempDir(), "cells.shp")
	written, err := WriteShapefile(path, cells)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}
