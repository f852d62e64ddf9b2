package model

import (
	"fmt"
	"strings"
)

// Column names the logical dataset columns. Loaders translate source
// headers to these names; everything downstream checks presence against
// them instead of re-testing raw headers per method.
type Column string

const (
	ColState            Column = "state"
	ColMunicipality     Column = "municipality"
	ColCellID           Column = "cell_id"
	ColEconActivity     Column = "econ_activity_category"
	ColPopulation       Column = "population_category"
	ColLogistics        Column = "logistics_category"
	ColEconActivityRank Column = "econ_activity_rank"
	ColPopulationRank   Column = "population_rank"
	ColLogisticsRank    Column = "logistics_rank"
)

// RequiredColumns lists the nine columns a dataset must carry to be valid.
func RequiredColumns() []Column {
	return []Column{
		ColState, ColMunicipality, ColCellID,
		ColEconActivity, ColPopulation, ColLogistics,
		ColEconActivityRank, ColPopulationRank, ColLogisticsRank,
	}
}

// SchemaError reports required columns absent from a dataset. It is a
// contract violation by the caller or upstream loader and is surfaced
// immediately rather than recovered from.
type SchemaError struct {
	Missing []Column
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("dataset: missing required columns: %s", strings.Join(names, ", "))
}

// Dataset is an ordered, read-only table of hexagon records plus the set
// of columns the source actually carried. Selection methods return new
// slices and never mutate the records, so a Dataset is safe to share
// across concurrent method invocations.
type Dataset struct {
	Records []Record
	columns map[Column]bool
}

// NewDataset builds a Dataset over records with the given present columns.
func NewDataset(records []Record, columns ...Column) *Dataset {
	set := make(map[Column]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &Dataset{Records: records, columns: set}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether the source carried the given column.
func (d *Dataset) HasColumn(c Column) bool {
	return d.columns[c]
}

// Columns returns the present columns in canonical order.
func (d *Dataset) Columns() []Column {
	var out []Column
	for _, c := range RequiredColumns() {
		if d.columns[c] {
			out = append(out, c)
		}
	}
	return out
}

// MissingColumns returns, in canonical order, which of the wanted columns
// are absent.
func (d *Dataset) MissingColumns(wanted ...Column) []Column {
	var missing []Column
	for _, c := range wanted {
		if !d.columns[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Validate checks that all nine required columns are present and returns a
// *SchemaError naming the absent ones otherwise.
func (d *Dataset) Validate() error {
	if missing := d.MissingColumns(RequiredColumns()...); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
