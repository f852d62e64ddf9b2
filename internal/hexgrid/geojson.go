package hexgrid

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Polygon returns the cell boundary as a go-geom polygon in WGS84.
func (c Converter) Polygon(id string) (*geom.Polygon, error) {
	ring, err := c.Boundary(id)
	if err != nil {
		return nil, err
	}

	flat := make([]float64, 0, len(ring)*2)
	for _, v := range ring {
		flat = append(flat, v[0], v[1])
	}

	poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
	return poly.SetSRID(4326), nil
}

// FeatureCollection converts the cell geometries into a GeoJSON feature
// collection, one polygon feature per successful cell. Failed cells are
// skipped; the caller already holds their reasons in the CellGeometry
// slice. props, when non-nil, supplies per-cell feature properties.
func FeatureCollection(cells []CellGeometry, props func(cellID string) map[string]any) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	for _, cg := range cells {
		if cg.Err != nil {
			continue
		}

		flat := make([]float64, 0, len(cg.Boundary)*2)
		for _, v := range cg.Boundary {
			flat = append(flat, v[0], v[1])
		}
		poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})

		feature := &geojson.Feature{
			ID:       cg.CellID,
			Geometry: poly,
			Properties: map[string]any{
				"cell_id": cg.CellID,
				"lat":     cg.Lat,
				"lng":     cg.Lng,
			},
		}
		if props != nil {
			for k, v := range props(cg.CellID) {
				feature.Properties[k] = v
			}
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc, nil
}

// MarshalFeatureCollection encodes the feature collection as GeoJSON.
func MarshalFeatureCollection(fc *geojson.FeatureCollection) ([]byte, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "hexgrid: marshal feature collection")
	}
	return data, nil
}
