// Package stats computes derived open access statistics: percentage
// derivation, largest-remainder quantization, and year-gap filling. All
// derivation happens once when a snapshot is built; the serving path never
// recomputes percentages per request.
package stats

import (
	"math"
	"sort"

	"github.com/oatlas/oatlas/internal/models"
)

// QuantizePercentages rounds a group of percentages to integers that sum to
// exactly 100 using the largest remainder method. The input is expected to
// sum to 100 within floating point error. No output deviates from its
// unrounded value by more than 1. An all-zero input yields all zeros.
func QuantizePercentages(values []float64) []int {
	out := make([]int, len(values))
	if len(values) == 0 {
		return out
	}

	total := 0.0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return out
	}

	type remainder struct {
		idx  int
		frac float64
	}

	floorSum := 0
	remainders := make([]remainder, len(values))
	for i, v := range values {
		fl := math.Floor(v)
		out[i] = int(fl)
		floorSum += int(fl)
		remainders[i] = remainder{idx: i, frac: v - fl}
	}

	// Distribute the shortfall to the largest fractional parts, breaking
	// ties by position so the result is deterministic.
	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})

	for i := 0; i < 100-floorSum && i < len(remainders); i++ {
		out[remainders[i].idx]++
	}

	return out
}

// Finalize computes the derived percentage fields of s from its raw counts.
// POutputsOpen is left at 0 when NOutputs is 0.
func Finalize(s *models.Stats) {
	if s.NOutputs == 0 {
		s.POutputsOpen = 0
		s.POutputsPublisherOpenOnly = 0
		s.POutputsBoth = 0
		s.POutputsOtherPlatformOpenOnly = 0
		s.POutputsClosed = 0

		return
	}

	n := float64(s.NOutputs)
	s.POutputsOpen = float64(s.NOutputsOpen) / n * 100

	quantized := QuantizePercentages([]float64{
		float64(s.NOutputsPublisherOpenOnly) / n * 100,
		float64(s.NOutputsBoth) / n * 100,
		float64(s.NOutputsOtherPlatformOpenOnly) / n * 100,
		float64(s.NOutputsClosed) / n * 100,
	})

	s.POutputsPublisherOpenOnly = quantized[0]
	s.POutputsBoth = quantized[1]
	s.POutputsOtherPlatformOpenOnly = quantized[2]
	s.POutputsClosed = quantized[3]
}

// FinalizeEntity derives the percentage fields for an entity's aggregate
// stats and every nested year, mutating e in place. Used at snapshot build
// and import time only.
func FinalizeEntity(e *models.Entity) {
	Finalize(&e.Stats)
	for i := range e.Years {
		Finalize(&e.Years[i].Stats)
	}
}
