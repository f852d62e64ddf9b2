package main

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/efts-group/hexsel/internal/selection"
	"github.com/efts-group/hexsel/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Weighted composite score (Method B)",
	Long: `Score every cell as the weighted sum of its three municipal
categories and normalize against the best score (0-100). Weights are
normalized to sum to 1; an all-zero triple means equal weights. Cells
with an unknown category keep their row but carry no score and sort
after every scored cell.

Examples:
  # Default weights (0.4 economic, 0.3 population, 0.3 logistics)
  rank

  # Logistics-heavy weighting within one municipality
  rank --w-econ 0.2 --w-pop 0.2 --w-log 0.6 --municipality "Zapopan"

  # Persist the run for later comparison
  rank --profile balanced --save`,
	RunE: runRank,
}

func init() {
	addSelectionFlags(rankCmd)
	f := rankCmd.Flags()
	f.Float64("w-econ", 0, "economic activity weight")
	f.Float64("w-pop", 0, "population weight")
	f.Float64("w-log", 0, "logistics weight")
	f.Bool("save", false, "persist the run to the store")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ds, err := loadDataset(ctx, cmd, params.Geo)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "rank"))
	log.Info("computing weighted scores",
		zap.Int("rows", ds.Len()),
		zap.Float64("w_econ", params.Weights.EconActivity),
		zap.Float64("w_pop", params.Weights.Population),
		zap.Float64("w_log", params.Weights.Logistics),
	)

	results := selection.Weighted(ds, params.Weights)

	var unscored int
	for _, r := range results {
		if !r.HasScore {
			unscored++
		}
	}
	log.Info("weighted scoring complete",
		zap.Int("scored", len(results)-unscored),
		zap.Int("unscored", unscored),
	)

	if err := outputTo(cmd, func(w io.Writer) error {
		if format == "csv" {
			return writeScoredCSV(w, results)
		}
		return writeScoredTable(w, results)
	}); err != nil {
		return err
	}

	return saveRun(ctx, cmd, store.MethodWeighted, params, len(results), results)
}
