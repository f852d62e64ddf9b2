package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/efts-group/hexsel/internal/db"
	"github.com/efts-group/hexsel/internal/selection"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// preparedStatements lists queries to prepare on each new connection for
// the most frequent store operations.
var preparedStatements = map[string]string{
	"insert_run": `INSERT INTO selection_runs (id, method, dataset_path, params, row_count, result, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"get_run":    `SELECT id, method, dataset_path, params, row_count, result, created_at FROM selection_runs WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS selection_runs (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	method       TEXT NOT NULL,
	dataset_path TEXT NOT NULL,
	params       JSONB NOT NULL,
	row_count    INTEGER NOT NULL,
	result       JSONB,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_selection_runs_method ON selection_runs(method);
CREATE INDEX IF NOT EXISTS idx_selection_runs_dataset ON selection_runs(dataset_path);
CREATE INDEX IF NOT EXISTS idx_selection_runs_created ON selection_runs(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.closeFn()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, method Method, datasetPath string, params selection.Params, rowCount int, result any) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal params")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO selection_runs (id, method, dataset_path, params, row_count, result, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, string(method), datasetPath, paramsJSON, rowCount, resultJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &Run{
		ID:          id,
		Method:      method,
		DatasetPath: datasetPath,
		Params:      params,
		RowCount:    rowCount,
		Result:      resultJSON,
		CreatedAt:   now,
	}, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, method, dataset_path, params, row_count, result, created_at FROM selection_runs WHERE id = $1`,
		runID,
	)

	run, err := scanPostgresRun(row.Scan)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, method, dataset_path, params, row_count, result, created_at FROM selection_runs WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Method != "" {
		query += ` AND method = ` + arg(string(filter.Method))
	}
	if filter.DatasetPath != "" {
		query += ` AND dataset_path = ` + arg(filter.DatasetPath)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanPostgresRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate runs")
	}
	return runs, nil
}

// scanPostgresRun decodes one selection_runs row; params and result
// arrive as JSONB bytes.
func scanPostgresRun(scan func(dest ...any) error) (*Run, error) {
	var run Run
	var method string
	var paramsJSON, resultJSON []byte

	if err := scan(&run.ID, &method, &run.DatasetPath, &paramsJSON, &run.RowCount, &resultJSON, &run.CreatedAt); err != nil {
		return nil, err
	}

	run.Method = Method(method)
	if err := json.Unmarshal(paramsJSON, &run.Params); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal params")
	}
	if len(resultJSON) > 0 {
		run.Result = json.RawMessage(resultJSON)
	}
	return &run, nil
}
