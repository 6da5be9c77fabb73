package query

import "github.com/oatlas/oatlas/internal/models"

// ObservedBounds computes the min/max of each filterable numeric field across
// the post-filter, pre-pagination result set. Zero-valued bounds are returned
// for an empty set.
func ObservedBounds(matches []models.Entity) models.Bounds {
	if len(matches) == 0 {
		return models.Bounds{}
	}

	first := matches[0].Stats
	b := models.Bounds{
		MinNOutputs:     first.NOutputs,
		MaxNOutputs:     first.NOutputs,
		MinNOutputsOpen: first.NOutputsOpen,
		MaxNOutputsOpen: first.NOutputsOpen,
		MinPOutputsOpen: first.POutputsOpen,
		MaxPOutputsOpen: first.POutputsOpen,
	}

	for _, e := range matches[1:] {
		s := e.Stats
		if s.NOutputs < b.MinNOutputs {
			b.MinNOutputs = s.NOutputs
		}
		if s.NOutputs > b.MaxNOutputs {
			b.MaxNOutputs = s.NOutputs
		}
		if s.NOutputsOpen < b.MinNOutputsOpen {
			b.MinNOutputsOpen = s.NOutputsOpen
		}
		if s.NOutputsOpen > b.MaxNOutputsOpen {
			b.MaxNOutputsOpen = s.NOutputsOpen
		}
		if s.POutputsOpen < b.MinPOutputsOpen {
			b.MinPOutputsOpen = s.POutputsOpen
		}
		if s.POutputsOpen > b.MaxPOutputsOpen {
			b.MaxPOutputsOpen = s.POutputsOpen
		}
	}

	return b
}
