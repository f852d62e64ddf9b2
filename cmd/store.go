package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/efts-group/hexsel/internal/selection"
	"github.com/efts-group/hexsel/internal/store"
)

// openStore opens the configured run-history backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}

	var s store.Store
	var err error
	switch cfg.Store.Driver {
	case "sqlite":
		s, err = store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// saveRun persists a selection result when --save was given.
func saveRun(ctx context.Context, cmd *cobra.Command, method store.Method, params selection.Params, rowCount int, result any) error {
	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.CreateRun(ctx, method, datasetPath(cmd), params, rowCount, result)
	if err != nil {
		return err
	}
	cmd.Printf("Saved run %s (%d rows)\n", run.ID, run.RowCount)
	return nil
}
