package hexgrid

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// WriteShapefile writes one polygon per successful cell geometry to an
// ESRI shapefile for GIS handoff, with the cell identifier in a CELL_ID
// attribute. Returns the number of polygons written; failed cells are
// skipped and counted by the caller via the CellGeometry errors.
func WriteShapefile(path string, cells []CellGeometry) (int, error) {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return 0, eris.Wrapf(err, "hexgrid: create shapefile %s", path)
	}
	defer w.Close()

	fields := []shp.Field{shp.StringField("CELL_ID", 20)}
	if err := w.SetFields(fields); err != nil {
		return 0, eris.Wrap(err, "hexgrid: set shapefile fields")
	}

	written := 0
	for _, cg := range cells {
		if cg.Err != nil || len(cg.Boundary) == 0 {
			continue
		}

		points := make([]shp.Point, 0, len(cg.Boundary))
		for _, v := range cg.Boundary {
			points = append(points, shp.Point{X: v[0], Y: v[1]})
		}

		poly := (*shp.Polygon)(shp.NewPolyLine([][]shp.Point{points}))
		idx := w.Write(poly)
		if err := w.WriteAttribute(int(idx), 0, cg.CellID); err != nil {
			zap.L().Warn("hexgrid: write shapefile attribute",
				zap.String("cell_id", cg.CellID),
				zap.Error(err),
			)
			continue
		}
		written++
	}

	return written, nil
}
