package query

import "github.com/oatlas/oatlas/internal/models"

// Filter returns the entities matching every predicate of q, preserving the
// original relative order. An inverted range (min > max) matches nothing,
// which is a valid empty result rather than an error.
func Filter(entities []models.Entity, q models.Query) []models.Entity {
	matches := make([]models.Entity, 0, len(entities))
	for _, e := range entities {
		if Matches(&e, q) {
			matches = append(matches, e)
		}
	}

	return matches
}

// Matches evaluates the conjunction of q's predicates against one entity.
func Matches(e *models.Entity, q models.Query) bool {
	if !q.IDs.Empty() && !q.IDs.Has(e.ID) {
		return false
	}

	if !q.Countries.Empty() && !q.Countries.Has(e.CountryCode) {
		return false
	}

	if !q.Subregions.Empty() && !q.Subregions.Has(e.Subregion) {
		return false
	}

	if !q.Regions.Empty() && !q.Regions.Has(e.Region) {
		return false
	}

	// Institution types are multi-valued: membership of any one suffices.
	if !q.InstitutionTypes.Empty() && !hasAny(q.InstitutionTypes, e.InstitutionTypes) {
		return false
	}

	if e.Stats.NOutputs < q.MinNOutputs || e.Stats.NOutputs > q.MaxNOutputs {
		return false
	}

	if e.Stats.NOutputsOpen < q.MinNOutputsOpen || e.Stats.NOutputsOpen > q.MaxNOutputsOpen {
		return false
	}

	if e.Stats.POutputsOpen < q.MinPOutputsOpen || e.Stats.POutputsOpen > q.MaxPOutputsOpen {
		return false
	}

	return true
}

func hasAny(set models.StringSet, values []string) bool {
	for _, v := range values {
		if set.Has(v) {
			return true
		}
	}

	return false
}
