package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/efts-group/hexsel/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted selection runs",
	RunE:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one persisted run with its result rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	f := runsCmd.Flags()
	f.String("method", "", "filter by method: hierarchical, weighted, or intersection")
	f.String("dataset", "", "filter by dataset path")
	f.Int("limit", 20, "maximum runs to list")
	f.Int("offset", 0, "offset into the run list")

	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	method, _ := cmd.Flags().GetString("method")
	datasetPath, _ := cmd.Flags().GetString("dataset")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	runs, err := s.ListRuns(ctx, store.RunFilter{
		Method:      store.Method(method),
		DatasetPath: datasetPath,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No runs found.")
		return nil
	}

	cmd.Printf("%-36s %-13s %-30s %6s %s\n", "ID", "Method", "Dataset", "Rows", "Created")
	for _, run := range runs {
		cmd.Printf("%-36s %-13s %-30s %6d %s\n",
			run.ID, run.Method, truncate(run.DatasetPath, 30), run.RowCount,
			run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.GetRun(ctx, args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:      %s\n", run.ID)
	cmd.Printf("Method:  %s\n", run.Method)
	cmd.Printf("Dataset: %s\n", run.DatasetPath)
	cmd.Printf("Rows:    %d\n", run.RowCount)
	cmd.Printf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(run.Result) > 0 {
		cmd.Printf("\n%s\n", string(run.Result))
	}
	return nil
}
