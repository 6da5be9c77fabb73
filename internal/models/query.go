package models

import "math"

// OrderDir is the sort direction of a list query.
type OrderDir string

// Sort directions. "dsc" matches the wire format used by dashboard clients.
const (
	OrderAsc OrderDir = "asc"
	OrderDsc OrderDir = "dsc"
)

// Query defaults and clamping bounds.
const (
	DefaultLimit   = 18
	MaxLimit       = 100
	DefaultOrderBy = "p_outputs_open"

	// MaxNOutputs is the sentinel upper bound for unbounded count ranges.
	MaxNOutputs = math.MaxInt
)

// StringSet is a set of filter values. An empty set means "no constraint".
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values, skipping empty strings.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}

	return s
}

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Empty reports whether the set carries no constraint.
func (s StringSet) Empty() bool { return len(s) == 0 }

// Values returns the set members in sorted-insensitive arbitrary order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}

	return out
}

// Query is a fully normalized filter/sort/page request. Every field is
// guaranteed to be inside its valid domain by the normalizer, with the single
// exception that min bounds may exceed max bounds; the filter engine treats
// such intervals as always false.
type Query struct {
	IDs              StringSet
	Countries        StringSet
	Subregions       StringSet
	Regions          StringSet
	InstitutionTypes StringSet

	MinNOutputs     int
	MaxNOutputs     int
	MinNOutputsOpen int
	MaxNOutputsOpen int
	MinPOutputsOpen float64
	MaxPOutputsOpen float64

	Page     int
	Limit    int
	OrderBy  string
	OrderDir OrderDir
}

// Bounds carries the min/max values observed across a filtered result set,
// used by range-slider UIs to recalibrate without a second round trip.
type Bounds struct {
	MinNOutputs     int     `json:"min_n_outputs"`
	MaxNOutputs     int     `json:"max_n_outputs"`
	MinNOutputsOpen int     `json:"min_n_outputs_open"`
	MaxNOutputsOpen int     `json:"max_n_outputs_open"`
	MinPOutputsOpen float64 `json:"min_p_outputs_open"`
	MaxPOutputsOpen float64 `json:"max_p_outputs_open"`
}

// QueryResult is the wire shape of a list or search response.
type QueryResult struct {
	Items    []Entity `json:"items"`
	NItems   int      `json:"n_items"`
	Page     int      `json:"page"`
	Limit    int      `json:"limit"`
	NPages   int      `json:"n_pages"`
	OrderBy  string   `json:"order_by,omitempty"`
	OrderDir OrderDir `json:"order_dir,omitempty"`
	Bounds   Bounds   `json:"bounds"`
	Build    string   `json:"build,omitempty"`
}
