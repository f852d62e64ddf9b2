package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/efts-group/hexsel/internal/model"
	"github.com/efts-group/hexsel/internal/selection"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all three selection methods side by side",
	Long: `Run the hierarchical filter, the weighted score, and the rank
intersection over the same dataset with one parameter set, and report
how much the three methods agree.

Examples:
  compare --state "Jalisco"
  compare --profile strict --top-n 50`,
	RunE: runCompare,
}

func init() {
	addSelectionFlags(compareCmd)
	f := compareCmd.Flags()
	f.Int("min-econ", 0, "minimum economic activity category (1-4)")
	f.Int("min-pop", 0, "minimum population category (1-4)")
	f.Int("min-log", 0, "minimum logistics category (1-4)")
	f.Float64("w-econ", 0, "economic activity weight")
	f.Float64("w-pop", 0, "population weight")
	f.Float64("w-log", 0, "logistics weight")
	f.Int("top-n", 0, "top set size per ranking")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	ds, err := loadDataset(ctx, cmd, params.Geo)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "compare"))
	log.Info("running all methods", zap.Int("rows", ds.Len()))

	var (
		filtered     *model.Dataset
		scored       []model.ScoredRecord
		intersection []model.IntersectionRecord
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		filtered = selection.Hierarchical(ds, params.Thresholds)
		return nil
	})
	g.Go(func() error {
		scored = selection.Weighted(ds, params.Weights)
		return nil
	})
	g.Go(func() error {
		var err error
		intersection, err = selection.Intersect(ds, params.TopN)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return outputTo(cmd, func(w io.Writer) error {
		return writeComparison(w, ds, filtered, scored, intersection, params)
	})
}

// writeComparison prints per-method survivor counts and the overlap
// between the hierarchical and intersection picks.
func writeComparison(w io.Writer, ds, filtered *model.Dataset, scored []model.ScoredRecord, intersection []model.IntersectionRecord, params selection.Params) error {
	inFiltered := make(map[string]bool, filtered.Len())
	for _, r := range filtered.Records {
		inFiltered[r.CellID] = true
	}
	var overlap int
	for _, r := range intersection {
		if inFiltered[r.CellID] {
			overlap++
		}
	}

	var topScore float64
	if len(scored) > 0 && scored[0].HasScore {
		topScore = scored[0].Score
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dataset rows:          %d\n", ds.Len())
	fmt.Fprintf(&b, "\n--- Method A: hierarchical filter ---\n")
	fmt.Fprintf(&b, "Thresholds:            econ>=%d pop>=%d log>=%d\n",
		params.Thresholds.MinEconActivity, params.Thresholds.MinPopulation, params.Thresholds.MinLogistics)
	fmt.Fprintf(&b, "Cells kept:            %d\n", filtered.Len())
	fmt.Fprintf(&b, "\n--- Method B: weighted score ---\n")
	fmt.Fprintf(&b, "Weights:               econ=%.2f pop=%.2f log=%.2f\n",
		params.Weights.EconActivity, params.Weights.Population, params.Weights.Logistics)
	fmt.Fprintf(&b, "Cells scored:          %d\n", len(scored))
	fmt.Fprintf(&b, "Best score:            %.3f\n", topScore)
	fmt.Fprintf(&b, "\n--- Method C: rank intersection ---\n")
	fmt.Fprintf(&b, "Top set size:          %d\n", params.TopN)
	fmt.Fprintf(&b, "Cells in >=2 top sets: %d\n", len(intersection))
	fmt.Fprintf(&b, "\nOverlap A and C:       %d\n", overlap)

	_, err := io.WriteString(w, b.String())
	return err
}
