package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/efts-group/hexsel/internal/dataset"
	"github.com/efts-group/hexsel/internal/hexgrid"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the selection HTTP API",
	Long: `Load the configured dataset once and serve the three selection
methods plus hexagon geometry lookups over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("dataset")
		if path == "" {
			path = cfg.Dataset.Path
		}
		if path == "" {
			return eris.New("serve: no dataset path given (--dataset flag or dataset.path config)")
		}

		ds, err := dataset.Load(ctx, path, cfg.Dataset.Sheet)
		if err != nil {
			return err
		}

		a := &api{
			ds:   ds,
			conv: hexgrid.New(cfg.Grid.Resolution),
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(a),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("dataset", path),
			zap.Int("rows", ds.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().String("dataset", "", "dataset path, .csv or .xlsx (default from config)")
	rootCmd.AddCommand(serveCmd)
}
