package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/efts-group/hexsel/internal/selection"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS selection_runs (
	id           TEXT PRIMARY KEY,
	method       TEXT NOT NULL,
	dataset_path TEXT NOT NULL,
	params       TEXT NOT NULL,
	row_count    INTEGER NOT NULL,
	result       TEXT,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_selection_runs_method ON selection_runs(method);
CREATE INDEX IF NOT EXISTS idx_selection_runs_dataset ON selection_runs(dataset_path);
CREATE INDEX IF NOT EXISTS idx_selection_runs_created ON selection_runs(created_at DESC);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, method Method, datasetPath string, params selection.Params, rowCount int, result any) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal params")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO selection_runs (id, method, dataset_path, params, row_count, result, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, string(method), datasetPath, string(paramsJSON), rowCount, string(resultJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
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

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, method, dataset_path, params, row_count, result, created_at FROM selection_runs WHERE id = ?`,
		runID,
	)

	run, err := scanRunRow(row.Scan)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := `SELECT id, method, dataset_path, params, row_count, result, created_at FROM selection_runs WHERE 1=1`
	var args []any
	if filter.Method != "" {
		query += ` AND method = ?`
		args = append(args, string(filter.Method))
	}
	if filter.DatasetPath != "" {
		query += ` AND dataset_path = ?`
		args = append(args, filter.DatasetPath)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRunRow(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}

// scanRunRow decodes one selection_runs row via the given Scan function.
func scanRunRow(scan func(dest ...any) error) (*Run, error) {
	var run Run
	var method, paramsJSON string
	var resultJSON sql.NullString

	if err := scan(&run.ID, &method, &run.DatasetPath, &paramsJSON, &run.RowCount, &resultJSON, &run.CreatedAt); err != nil {
		return nil, err
	}

	run.Method = Method(method)
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal params")
	}
	if resultJSON.Valid {
		run.Result = json.RawMessage(resultJSON.String)
	}
	return &run, nil
}
