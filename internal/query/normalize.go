// Package query implements the list-query pipeline: normalizing raw request
// parameters into a bounded Query, filtering an entity collection, ordering
// the matches, and slicing a page. Each step is a pure function over its
// inputs; nothing here mutates an Entity.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/oatlas/oatlas/internal/models"
)

// orderByFields is the whitelist of sortable fields.
var orderByFields = map[string]struct{}{
	"name":           {},
	"n_outputs":      {},
	"n_outputs_open": {},
	"p_outputs_open": {},
}

// Normalize parses raw query parameters into a fully populated Query.
// Malformed or out-of-range values are coerced to the field default, never
// rejected: the returned Query is always usable. Independently clamped min
// and max bounds may cross; the filter engine resolves that to an empty
// result set.
func Normalize(params url.Values) models.Query {
	q := models.Query{
		IDs:              parseSet(params.Get("ids")),
		Countries:        parseSet(params.Get("countries")),
		Subregions:       parseSet(params.Get("subregions")),
		Regions:          parseSet(params.Get("regions")),
		InstitutionTypes: parseSet(params.Get("institutionTypes")),

		MinNOutputs:     clampInt(parseInt(params.Get("minNOutputs"), 0), 0, models.MaxNOutputs),
		MaxNOutputs:     clampInt(parseInt(params.Get("maxNOutputs"), models.MaxNOutputs), 0, models.MaxNOutputs),
		MinNOutputsOpen: clampInt(parseInt(params.Get("minNOutputsOpen"), 0), 0, models.MaxNOutputs),
		MaxNOutputsOpen: clampInt(parseInt(params.Get("maxNOutputsOpen"), models.MaxNOutputs), 0, models.MaxNOutputs),
		MinPOutputsOpen: clampFloat(parseFloat(params.Get("minPOutputsOpen"), 0), 0, 100),
		MaxPOutputsOpen: clampFloat(parseFloat(params.Get("maxPOutputsOpen"), 100), 0, 100),

		Page:     clampInt(parseInt(params.Get("page"), 0), 0, models.MaxNOutputs),
		Limit:    clampInt(parseInt(params.Get("limit"), models.DefaultLimit), 1, models.MaxLimit),
		OrderBy:  parseOrderBy(params.Get("orderBy")),
		OrderDir: parseOrderDir(params.Get("orderDir")),
	}

	return q
}

// parseSet splits a comma-separated parameter into a set. Empty elements are
// dropped so an absent or empty parameter never becomes a set containing "".
func parseSet(raw string) models.StringSet {
	if raw == "" {
		return models.StringSet{}
	}

	parts := strings.Split(raw, ",")
	set := make(models.StringSet, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = struct{}{}
		}
	}

	return set
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func parseFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}

	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func parseOrderBy(raw string) string {
	if _, ok := orderByFields[raw]; ok {
		return raw
	}

	return models.DefaultOrderBy
}

func parseOrderDir(raw string) models.OrderDir {
	if models.OrderDir(raw) == models.OrderAsc {
		return models.OrderAsc
	}

	return models.OrderDsc
}
