// Package hexgrid converts H3 cell identifiers into renderable geometry:
// closed boundary rings, centroids, GeoJSON features, and shapefile
// exports. All conversions are stateless per-cell functions, safe to call
// concurrently and once per result row.
package hexgrid

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/uber/h3-go/v4"
)

// GeometryError reports a cell identifier that cannot be converted to a
// boundary or centroid: malformed, invalid, or at the wrong resolution.
type GeometryError struct {
	CellID string
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("hexgrid: cell %q: %s", e.CellID, e.Reason)
}

// Converter validates cell identifiers against the dataset's fixed H3
// resolution and converts them to geometry.
type Converter struct {
	resolution int
}

// DefaultResolution is the H3 resolution of the municipal hexagon
// datasets (the source keys rows by resolution-9 cells).
const DefaultResolution = 9

// New returns a Converter for the given H3 resolution.
func New(resolution int) Converter {
	return Converter{resolution: resolution}
}

// Resolution returns the expected H3 resolution.
func (c Converter) Resolution() int {
	return c.resolution
}

// cell parses and validates an identifier at the expected resolution.
func (c Converter) cell(id string) (h3.Cell, error) {
	cell := h3.Cell(h3.IndexFromString(id))
	if !cell.IsValid() {
		return 0, &GeometryError{CellID: id, Reason: "not a valid H3 cell"}
	}
	if res := cell.Resolution(); res != c.resolution {
		return 0, &GeometryError{
			CellID: id,
			Reason: fmt.Sprintf("resolution %d, expected %d", res, c.resolution),
		}
	}
	return cell, nil
}

// Boundary returns the cell's boundary as an ordered, closed ring of
// (longitude, latitude) coordinates: the first vertex is repeated as the
// last.
func (c Converter) Boundary(id string) ([]geom.Coord, error) {
	cell, err := c.cell(id)
	if err != nil {
		return nil, err
	}

	boundary, err := cell.Boundary()
	if err != nil {
		return nil, &GeometryError{CellID: id, Reason: err.Error()}
	}

	ring := make([]geom.Coord, 0, len(boundary)+1)
	for _, v := range boundary {
		ring = append(ring, geom.Coord{v.Lng, v.Lat})
	}
	if len(ring) > 0 && !ring[0].Equal(geom.XY, ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// Centroid returns the (latitude, longitude) of the cell center.
func (c Converter) Centroid(id string) (lat, lng float64, err error) {
	cell, err := c.cell(id)
	if err != nil {
		return 0, 0, err
	}

	ll, err := cell.LatLng()
	if err != nil {
		return 0, 0, &GeometryError{CellID: id, Reason: err.Error()}
	}
	return ll.Lat, ll.Lng, nil
}

// CellGeometry is the per-cell conversion outcome: geometry on success or
// the failure reason. Callers collect the failures and report them in
// aggregate instead of the converter logging per cell.
type CellGeometry struct {
	CellID   string
	Boundary []geom.Coord
	Lat      float64
	Lng      float64
	Err      error
}

// Convert resolves geometry for every identifier, one outcome per input,
// in input order.
func (c Converter) Convert(ids []string) []CellGeometry {
	out := make([]CellGeometry, 0, len(ids))
	for _, id := range ids {
		cg := CellGeometry{CellID: id}
		cg.Boundary, cg.Err = c.Boundary(id)
		if cg.Err == nil {
			cg.Lat, cg.Lng, cg.Err = c.Centroid(id)
		}
		out = append(out, cg)
	}
	return out
}
