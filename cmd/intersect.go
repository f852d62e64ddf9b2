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

var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "Multi-rank top-N intersection (Method C)",
	Long: `Take the top N cells of each of the three municipal rankings and
emit the cells that appear in at least two of the top sets, best
agreement first. Rows without a rank in a dimension sort last for that
dimension.

Examples:
  # Cells in at least two of the three top-100 sets
  intersect

  # Tighter cut
  intersect --top-n 25

  # Within one state, CSV output
  intersect --state "Jalisco" --format csv --output core_cells.csv`,
	RunE: runIntersect,
}

func init() {
	addSelectionFlags(intersectCmd)
	f := intersectCmd.Flags()
	f.Int("top-n", 0, "top set size per ranking (default from profile)")
	f.Bool("save", false, "persist the run to the store")

	rootCmd.AddCommand(intersectCmd)
}

func runIntersect(cmd *cobra.Command, _ []string) error {
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

	log := zap.L().With(zap.String("command", "intersect"))
	log.Info("computing rank intersection",
		zap.Int("rows", ds.Len()),
		zap.Int("top_n", params.TopN),
	)

	results, err := selection.Intersect(ds, params.TopN)
	if err != nil {
		return err
	}
	log.Info("rank intersection complete", zap.Int("matched", len(results)))

	if len(results) == 0 {
		cmd.Println("No cells appear in two or more top sets.")
	}

	if err := outputTo(cmd, func(w io.Writer) error {
		if format == "csv" {
			return writeIntersectionCSV(w, results)
		}
		return writeIntersectionTable(w, results)
	}); err != nil {
		return err
	}

	return saveRun(ctx, cmd, store.MethodIntersection, params, len(results), results)
}
