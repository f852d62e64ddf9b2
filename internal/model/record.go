package model

// Record is one row of the working table: a single H3 cell together with
// the municipal categories and rankings it inherits from its municipality.
// Category and rank values are municipal-level, so every cell in the same
// municipality carries identical values.
type Record struct {
	CellID       string `json:"cell_id"`
	State        string `json:"state"`
	Municipality string `json:"municipality"`

	EconActivity Category `json:"econ_activity"`
	Population   Category `json:"population"`
	Logistics    Category `json:"logistics"`

	// Ranks are 1-based, 1 = best. Zero means the rank was absent from
	// the source row.
	EconActivityRank int `json:"econ_activity_rank"`
	PopulationRank   int `json:"population_rank"`
	LogisticsRank    int `json:"logistics_rank"`
}

// ScoredRecord is a Method B output row: the input record plus the derived
// score columns. These are output-only augmentations, never written back
// to the dataset.
type ScoredRecord struct {
	Record
	// HasScore is false when any category was unknown; Score is then
	// meaningless and ScoreNorm is 0.
	HasScore  bool    `json:"has_score"`
	Score     float64 `json:"score"`
	ScoreNorm float64 `json:"score_norm"`
}

// IntersectionRecord is a Method C output row: one cell that appeared in
// at least two of the three per-dimension top sets.
type IntersectionRecord struct {
	CellID            string `json:"cell_id"`
	MatchCount        int    `json:"match_count"`
	InTopEconActivity bool   `json:"in_top_econ_activity"`
	InTopPopulation   bool   `json:"in_top_population"`
	InTopLogistics    bool   `json:"in_top_logistics"`
}
