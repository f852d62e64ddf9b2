package main

import (
	"bytes"
	"encoding/csv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efts-group/hexsel/internal/model"
)

func TestWriteRecordCSV(t *testing.T) {
	records := []model.Record{
		{CellID: "8928308280fffff", State: "Jalisco", Municipality: "Guadalajara",
			EconActivity: model.CategoryTop, Population: model.CategoryHigh, Logistics: model.CategoryMedium},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRecordCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"cell_id", "state", "municipality", "econ_activity", "population", "logistics"}, rows[0])
	assert.Equal(t, "8928308280fffff", rows[1][0])
	assert.Equal(t, "A+", rows[1][3])
}

func TestWriteRecordTable(t *testing.T) {
	records := []model.Record{
		{CellID: "8928308280fffff", State: "Jalisco", Municipality: "San Pedro Tlaquepaque de la Reforma",
			EconActivity: model.CategoryLow, Population: model.CategoryLow, Logistics: model.CategoryLow},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRecordTable(&buf, records))

	out := buf.String()
	assert.Contains(t, out, "Cell ID")
	assert.Contains(t, out, "8928308280fffff")
	// Long municipality names are truncated for the fixed-width table.
	assert.Contains(t, out, "...")
}

func TestWriteScoredCSVMissingScore(t *testing.T) {
	records := []model.ScoredRecord{
		{Record: model.Record{CellID: "a"}, HasScore: true, Score: 2.5, ScoreNorm: 100},
		{Record: model.Record{CellID: "b"}, HasScore: false},
	}

	var buf bytes.Buffer
	require.NoError(t, writeScoredCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2.5000", rows[1][3])
	// Unscored rows leave the score column empty rather than writing 0.
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "0.00", rows[2][4])
}

func TestWriteScoredTable(t *testing.T) {
	records := []model.ScoredRecord{
		{Record: model.Record{CellID: "a", State: "X", Municipality: "Y"}, HasScore: false},
	}

	var buf bytes.Buffer
	require.NoError(t, writeScoredTable(&buf, records))
	assert.Contains(t, buf.String(), "-")
}

func TestWriteIntersectionCSV(t *testing.T) {
	records := []model.IntersectionRecord{
		{CellID: "a", MatchCount: 3, InTopEconActivity: true, InTopPopulation: true, InTopLogistics: true},
		{CellID: "b", MatchCount: 2, InTopEconActivity: true, InTopPopulation: false, InTopLogistics: true},
	}

	var buf bytes.Buffer
	require.NoError(t, writeIntersectionCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "3", "true", "true", "true"}, rows[1])
	assert.Equal(t, []string{"b", "2", "true", "false", "true"}, rows[2])
}

func TestWriteIntersectionTable(t *testing.T) {
	records := []model.IntersectionRecord{
		{CellID: "a", MatchCount: 2, InTopEconActivity: true, InTopLogistics: true},
	}

	var buf bytes.Buffer
	require.NoError(t, writeIntersectionTable(&buf, records))

	out := buf.String()
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "toolong...", truncate("toolong-name", 10))
}

func TestTruncateAccentedNames(t *testing.T) {
	got := truncate("Mérida de Yucatán", 10)
	assert.Equal(t, "Mérida ...", got)
	assert.True(t, utf8.ValidString(got))

	// A name whose rune count fits is untouched even though its byte
	// length exceeds the column width.
	assert.Equal(t, "Yucatán-áé", truncate("Yucatán-áé", 10))
}
