package dataset

import (
	"strconv"
	"strings"

	"github.com/efts-group/hexsel/internal/model"
)

// DecodeCategory parses one raw category cell. Sources ship either the
// label vocabulary (B, M, A, A+) or already-encoded integers 1-4; any
// other content maps to the explicit unknown value, never to an in-range
// rating, so unrecognized labels cannot bias the threshold filter or the
// weighted score.
func DecodeCategory(raw string) model.Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.CategoryUnknown
	}

	if c := model.ParseCategory(raw); c.Known() {
		return c
	}

	if n, err := strconv.Atoi(raw); err == nil {
		c := model.Category(n)
		if c.Known() {
			return c
		}
	}
	return model.CategoryUnknown
}

// decodeRank parses a rank cell; ranks are positive integers, anything
// else is treated as absent (zero), which sorts last in Method C.
func decodeRank(raw string) int {
	raw = strings.TrimSpace(raw)
	// Rank columns exported from spreadsheets often carry a float
	// rendering ("3.0").
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
