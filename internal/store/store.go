// Package store persists selection runs so an analyst can compare
// methodology outcomes across parameter sets without re-running them.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/efts-group/hexsel/internal/selection"
)

// Method names a selection method in a persisted run.
type Method string

const (
	MethodHierarchical Method = "hierarchical"
	MethodWeighted     Method = "weighted"
	MethodIntersection Method = "intersection"
)

// Run is one persisted invocation of a selection method: the parameters
// it ran with and the result rows it produced.
type Run struct {
	ID          string           `json:"id"`
	Method      Method           `json:"method"`
	DatasetPath string           `json:"dataset_path"`
	Params      selection.Params `json:"params"`
	RowCount    int              `json:"row_count"`
	Result      json.RawMessage  `json:"result,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Method      Method `json:"method,omitempty"`
	DatasetPath string `json:"dataset_path,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = eris.New("store: run not found")

// Store defines the persistence interface for selection runs.
type Store interface {
	CreateRun(ctx context.Context, method Method, datasetPath string, params selection.Params, rowCount int, result any) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
