package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/efts-group/hexsel/internal/hexgrid"
	"github.com/efts-group/hexsel/internal/model"
	"github.com/efts-group/hexsel/internal/selection"
)

// api serves selection methods over a dataset loaded at startup.
type api struct {
	ds   *model.Dataset
	conv hexgrid.Converter
}

// selectionRequest is the shared body of the method endpoints. Omitted
// parameter groups fall back to the defaults.
type selectionRequest struct {
	State        string                `json:"state"`
	Municipality string                `json:"municipality"`
	Thresholds   *selection.Thresholds `json:"thresholds"`
	Weights      *selection.Weights    `json:"weights"`
	TopN         int                   `json:"top_n"`
	Limit        int                   `json:"limit"`
	Geometry     bool                  `json:"geometry"`
}

// params merges the request over the default parameter set.
func (req *selectionRequest) params() selection.Params {
	p := selection.DefaultParams()
	p.Geo.State = req.State
	p.Geo.Municipality = req.Municipality
	if req.Thresholds != nil {
		p.Thresholds = *req.Thresholds
	}
	if req.Weights != nil {
		p.Weights = *req.Weights
	}
	if req.TopN > 0 {
		p.TopN = req.TopN
	}
	return p
}

type selectionResponse struct {
	Rows    any    `json:"rows"`
	Total   int    `json:"total"`
	Warning string `json:"warning,omitempty"`
}

// geometryRow attaches the hexagon ring to a result row when the request
// asked for geometry.
type geometryRow struct {
	Row      any          `json:"row"`
	Boundary [][2]float64 `json:"boundary,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func newRouter(a *api) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rateLimit(rate.NewLimiter(50, 100)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/filter", a.handleFilter)
		r.Post("/rank", a.handleRank)
		r.Post("/intersect", a.handleIntersect)
		r.Post("/compare", a.handleCompare)
		r.Get("/cells/{id}/boundary", a.handleCellBoundary)
	})

	return r
}

// requestLogger logs each request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateLimit applies a shared token bucket across all callers.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*selectionRequest, selection.Params, bool) {
	var req selectionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
			return nil, selection.Params{}, false
		}
	}
	params := req.params()
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, selection.Params{}, false
	}
	return &req, params, true
}

func (a *api) handleFilter(w http.ResponseWriter, r *http.Request) {
	req, params, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	ds := selection.Prefilter(a.ds, params.Geo)
	result := selection.Hierarchical(ds, params.Thresholds)

	rows := result.Records
	if req.Limit > 0 && req.Limit < len(rows) {
		rows = rows[:req.Limit]
	}
	a.respondRows(w, req, recordsToAny(rows), result.Len(), func(i int) string { return rows[i].CellID })
}

func (a *api) handleRank(w http.ResponseWriter, r *http.Request) {
	req, params, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	ds := selection.Prefilter(a.ds, params.Geo)
	scored := selection.Weighted(ds, params.Weights)

	rows := scored
	if req.Limit > 0 && req.Limit < len(rows) {
		rows = rows[:req.Limit]
	}
	a.respondRows(w, req, scoredToAny(rows), len(scored), func(i int) string { return rows[i].CellID })
}

func (a *api) handleIntersect(w http.ResponseWriter, r *http.Request) {
	req, params, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	ds := selection.Prefilter(a.ds, params.Geo)
	matched, err := selection.Intersect(ds, params.TopN)
	if err != nil {
		// SchemaError and invalid topN are both caller problems.
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rows := matched
	if req.Limit > 0 && req.Limit < len(rows) {
		rows = rows[:req.Limit]
	}
	a.respondRows(w, req, intersectionToAny(rows), len(matched), func(i int) string { return rows[i].CellID })
}

type compareResponse struct {
	Filtered     selectionResponse `json:"filtered"`
	Ranked       selectionResponse `json:"ranked"`
	Intersection selectionResponse `json:"intersection"`
}

func (a *api) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, params, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	ds := selection.Prefilter(a.ds, params.Geo)

	var (
		filtered     *model.Dataset
		scored       []model.ScoredRecord
		intersection []model.IntersectionRecord
	)
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		filtered = selection.Hierarchical(ds, params.Thresholds)
		return nil
	})
	g.Go(func() error {
		scored = selection.Weighted(ds, params.Weights)
		return nil
	})
	g.Go(func() error {
		var err error
		intersection, err = selection.Intersect(ds, params.TopN)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := compareResponse{
		Filtered:     selectionResponse{Rows: recordsToAny(limitRecords(filtered.Records, req.Limit)), Total: filtered.Len()},
		Ranked:       selectionResponse{Rows: scoredToAny(limitScored(scored, req.Limit)), Total: len(scored)},
		Intersection: selectionResponse{Rows: intersectionToAny(limitIntersection(intersection, req.Limit)), Total: len(intersection)},
	}
	if filtered.Len() == 0 && len(intersection) == 0 {
		resp.Filtered.Warning = "no rows matched"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) handleCellBoundary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fc, err := hexgrid.FeatureCollection(a.conv.Convert([]string{id}), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(fc.Features) == 0 {
		writeError(w, http.StatusNotFound, eris.Errorf("unknown cell %q", id))
		return
	}
	data, err := hexgrid.MarshalFeatureCollection(fc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// respondRows writes the rows, optionally attaching per-row hexagon
// boundaries, and surfaces an empty result as a warning.
func (a *api) respondRows(w http.ResponseWriter, req *selectionRequest, rows []any, total int, cellID func(i int) string) {
	resp := selectionResponse{Rows: rows, Total: total}
	if total == 0 {
		resp.Warning = "no rows matched"
	}

	if req.Geometry && len(rows) > 0 {
		withGeom := make([]any, len(rows))
		for i, row := range rows {
			gr := geometryRow{Row: row}
			ring, err := a.conv.Boundary(cellID(i))
			if err != nil {
				gr.Error = err.Error()
			} else {
				gr.Boundary = make([][2]float64, len(ring))
				for j, coord := range ring {
					gr.Boundary[j] = [2]float64{coord[0], coord[1]}
				}
			}
			withGeom[i] = gr
		}
		resp.Rows = withGeom
	}

	writeJSON(w, http.StatusOK, resp)
}

func recordsToAny(records []model.Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

func scoredToAny(records []model.ScoredRecord) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

func intersectionToAny(records []model.IntersectionRecord) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

func limitRecords(records []model.Record, limit int) []model.Record {
	if limit > 0 && limit < len(records) {
		return records[:limit]
	}
	return records
}

func limitScored(records []model.ScoredRecord, limit int) []model.ScoredRecord {
	if limit > 0 && limit < len(records) {
		return records[:limit]
	}
	return records
}

func limitIntersection(records []model.IntersectionRecord, limit int) []model.IntersectionRecord {
	if limit > 0 && limit < len(records) {
		return records[:limit]
	}
	return records
}
