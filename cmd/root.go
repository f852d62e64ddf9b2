package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/efts-group/hexsel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hexsel",
	Short: "Rank and select H3 hexagon cells by municipal indicators",
	Long:  "Loads a hexagon-level table of municipal categories and rankings, applies one of three selection methods (hierarchical filter, weighted composite score, multi-rank intersection), and exports the surviving cells as tables, GeoJSON, or shapefiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
