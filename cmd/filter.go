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

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Hierarchical threshold filter (Method A)",
	Long: `Keep only the cells whose municipal categories meet every provided
minimum. Thresholds are ordinal category values (1=B, 2=M, 3=A, 4=A+);
a threshold of 0 leaves that dimension unconstrained. With no thresholds
the dataset passes through unchanged.

Examples:
  # Cells whose municipality is at least "A" in economic activity
  filter --min-econ 3

  # Default profile thresholds within one state
  filter --state "Jalisco"

  # Named profile, CSV output
  filter --profile strict --format csv --output filtered.csv`,
	RunE: runFilter,
}

func init() {
	addSelectionFlags(filterCmd)
	f := filterCmd.Flags()
	f.Int("min-econ", 0, "minimum economic activity category (1-4)")
	f.Int("min-pop", 0, "minimum population category (1-4)")
	f.Int("min-log", 0, "minimum logistics category (1-4)")
	f.Bool("save", false, "persist the run to the store")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
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

	log := zap.L().With(zap.String("command", "filter"))
	log.Info("applying hierarchical filter",
		zap.Int("rows", ds.Len()),
		zap.Int("min_econ", params.Thresholds.MinEconActivity),
		zap.Int("min_pop", params.Thresholds.MinPopulation),
		zap.Int("min_log", params.Thresholds.MinLogistics),
	)

	result := selection.Hierarchical(ds, params.Thresholds)
	log.Info("hierarchical filter complete", zap.Int("kept", result.Len()))

	if result.Len() == 0 {
		cmd.Println("No cells passed the thresholds.")
	}

	if err := outputTo(cmd, func(w io.Writer) error {
		if format == "csv" {
			return writeRecordCSV(w, result.Records)
		}
		return writeRecordTable(w, result.Records)
	}); err != nil {
		return err
	}

	return saveRun(ctx, cmd, store.MethodHierarchical, params, result.Len(), result.Records)
}
