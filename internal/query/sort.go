package query

import (
	"sort"
	"strings"

	"github.com/oatlas/oatlas/internal/models"
)

// Sort orders matches in place by a single whitelisted field. The sort is
// stable so equal keys keep their original relative order, and descending
// order is applied by inverting the comparator rather than reversing the
// slice, which preserves the tie-break order in both directions.
func Sort(matches []models.Entity, orderBy string, dir models.OrderDir) {
	less := comparator(orderBy)
	if dir == models.OrderDsc {
		asc := less
		less = func(a, b *models.Entity) bool { return asc(b, a) }
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return less(&matches[i], &matches[j])
	})
}

// comparator maps an orderBy field to an ascending less function. The
// normalizer guarantees orderBy is one of the whitelisted fields; anything
// else falls back to the default sort key.
func comparator(orderBy string) func(a, b *models.Entity) bool {
	switch orderBy {
	case "name":
		return func(a, b *models.Entity) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "n_outputs":
		return func(a, b *models.Entity) bool {
			return a.Stats.NOutputs < b.Stats.NOutputs
		}
	case "n_outputs_open":
		return func(a, b *models.Entity) bool {
			return a.Stats.NOutputsOpen < b.Stats.NOutputsOpen
		}
	default:
		return func(a, b *models.Entity) bool {
			return a.Stats.POutputsOpen < b.Stats.POutputsOpen
		}
	}
}
