package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/efts-group/hexsel/internal/model"
)

// outputTo runs write against --output (or stdout when unset).
func outputTo(cmd *cobra.Command, write func(w io.Writer) error) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}
	defer f.Close() //nolint:errcheck
	return write(f)
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" {
		return "", eris.Errorf("output: --format must be table or csv (got %q)", format)
	}
	return format, nil
}

func writeRecordCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"cell_id", "state", "municipality", "econ_activity", "population", "logistics"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, r := range records {
		row := []string{
			r.CellID,
			r.State,
			r.Municipality,
			r.EconActivity.String(),
			r.Population.String(),
			r.Logistics.String(),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeRecordTable(w io.Writer, records []model.Record) error {
	header := fmt.Sprintf("%-18s %-20s %-30s %6s %6s %6s\n",
		"Cell ID", "State", "Municipality", "Econ", "Pop", "Log")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 92)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for _, r := range records {
		line := fmt.Sprintf("%-18s %-20s %-30s %6s %6s %6s\n",
			r.CellID, truncate(r.State, 20), truncate(r.Municipality, 30),
			r.EconActivity, r.Population, r.Logistics)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

func writeScoredCSV(w io.Writer, records []model.ScoredRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"cell_id", "state", "municipality", "score", "score_norm"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, r := range records {
		score := ""
		if r.HasScore {
			score = fmt.Sprintf("%.4f", r.Score)
		}
		row := []string{
			r.CellID,
			r.State,
			r.Municipality,
			score,
			fmt.Sprintf("%.2f", r.ScoreNorm),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeScoredTable(w io.Writer, records []model.ScoredRecord) error {
	header := fmt.Sprintf("%-18s %-20s %-30s %8s %8s\n",
		"Cell ID", "State", "Municipality", "Score", "Norm")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 89)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for _, r := range records {
		score := "-"
		if r.HasScore {
			score = fmt.Sprintf("%.3f", r.Score)
		}
		line := fmt.Sprintf("%-18s %-20s %-30s %8s %8.2f\n",
			r.CellID, truncate(r.State, 20), truncate(r.Municipality, 30),
			score, r.ScoreNorm)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

func writeIntersectionCSV(w io.Writer, records []model.IntersectionRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"cell_id", "match_count", "in_top_econ_activity", "in_top_population", "in_top_logistics"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "output: write CSV header")
	}
	for _, r := range records {
		row := []string{
			r.CellID,
			fmt.Sprintf("%d", r.MatchCount),
			fmt.Sprintf("%v", r.InTopEconActivity),
			fmt.Sprintf("%v", r.InTopPopulation),
			fmt.Sprintf("%v", r.InTopLogistics),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write CSV row")
		}
	}
	return nil
}

func writeIntersectionTable(w io.Writer, records []model.IntersectionRecord) error {
	header := fmt.Sprintf("%-18s %7s %6s %6s %6s\n",
		"Cell ID", "Matches", "Econ", "Pop", "Log")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "output: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 48)); err != nil {
		return eris.Wrap(err, "output: write table separator")
	}

	for _, r := range records {
		line := fmt.Sprintf("%-18s %7d %6s %6s %6s\n",
			r.CellID, r.MatchCount,
			checkmark(r.InTopEconActivity), checkmark(r.InTopPopulation), checkmark(r.InTopLogistics))
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "output: write table row")
		}
	}
	return nil
}

func checkmark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens s to max runes for fixed-width table columns.
// Counting runes keeps accented municipality names valid UTF-8.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
