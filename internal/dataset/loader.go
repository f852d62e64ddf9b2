package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/efts-group/hexsel/internal/model"
)

// headerAliases translates source headers to logical columns. The
// municipal export ships Spanish headers (noment, nomgeo, h3_09, catMun*,
// rankMun*); canonical English names are accepted too. Lookup is
// case-insensitive.
var headerAliases = map[string]model.Column{
	"noment": model.ColState,
	"state":  model.ColState,

	"nomgeo":       model.ColMunicipality,
	"municipality": model.ColMunicipality,

	"h3_09":   model.ColCellID,
	"cell_id": model.ColCellID,

	"catmunactecon":          model.ColEconActivity,
	"econ_activity_category": model.ColEconActivity,

	"catmunpob":           model.ColPopulation,
	"population_category": model.ColPopulation,

	"catmunaflulog":      model.ColLogistics,
	"logistics_category": model.ColLogistics,

	"rankmunacteco":      model.ColEconActivityRank,
	"econ_activity_rank": model.ColEconActivityRank,

	"rankmunpob":      model.ColPopulationRank,
	"population_rank": model.ColPopulationRank,

	"rankmunaflulog": model.ColLogisticsRank,
	"logistics_rank": model.ColLogisticsRank,
}

// FromRows builds a dataset from a raw header and rows, translating
// headers, decoding categories, and parsing ranks. Unrecognized headers
// are ignored; column presence reflects what the source actually carried.
// No schema validation happens here so externally merged subsets (Method
// C inputs) can be represented; Load validates the full schema.
func FromRows(header []string, rows [][]string) *model.Dataset {
	index := make(map[model.Column]int, len(header))
	var columns []model.Column
	for i, h := range header {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := index[col]; dup {
			continue
		}
		index[col] = i
		columns = append(columns, col)
	}

	cell := func(row []string, col model.Column) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		r := model.Record{
			CellID:       strings.TrimSpace(cell(row, model.ColCellID)),
			State:        strings.TrimSpace(cell(row, model.ColState)),
			Municipality: strings.TrimSpace(cell(row, model.ColMunicipality)),
		}
		if _, ok := index[model.ColEconActivity]; ok {
			r.EconActivity = DecodeCategory(cell(row, model.ColEconActivity))
		}
		if _, ok := index[model.ColPopulation]; ok {
			r.Population = DecodeCategory(cell(row, model.ColPopulation))
		}
		if _, ok := index[model.ColLogistics]; ok {
			r.Logistics = DecodeCategory(cell(row, model.ColLogistics))
		}
		r.EconActivityRank = decodeRank(cell(row, model.ColEconActivityRank))
		r.PopulationRank = decodeRank(cell(row, model.ColPopulationRank))
		r.LogisticsRank = decodeRank(cell(row, model.ColLogisticsRank))
		records = append(records, r)
	}

	return model.NewDataset(records, columns...)
}

// Load reads a dataset file (CSV or XLSX by extension), applies the
// category encoding, and validates that all nine required columns are
// present. A missing column is a fatal configuration error, not a
// recoverable default. For XLSX files, sheet selects the worksheet by
// name; empty means the first sheet.
func Load(ctx context.Context, path, sheet string) (*model.Dataset, error) {
	var header []string
	var rows [][]string

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close()
		header, rows, err = readCSV(ctx, f, CSVOptions{TrimSpace: true})
		if err != nil {
			return nil, err
		}
	case ".xlsx":
		var err error
		header, rows, err = readXLSX(path, XLSXOptions{SheetName: sheet})
		if err != nil {
			return nil, err
		}
	default:
		return nil, eris.Errorf("dataset: unsupported file extension %q", ext)
	}

	ds := FromRows(header, rows)
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("records", ds.Len()),
	)
	return ds, nil
}
