package stats

import "github.com/oatlas/oatlas/internal/models"

// FillYearGaps returns one Year record per year between start and end
// inclusive, in ascending order. Years missing from sparse are zero-filled.
// Years outside [start, end] are dropped. Returns nil when start > end.
func FillYearGaps(start, end int, sparse []models.Year) []models.Year {
	if start > end {
		return nil
	}

	byYear := make(map[int]models.Year, len(sparse))
	for _, y := range sparse {
		byYear[y.Year] = y
	}

	dense := make([]models.Year, 0, end-start+1)
	for y := start; y <= end; y++ {
		if rec, ok := byYear[y]; ok {
			dense = append(dense, rec)
			continue
		}

		dense = append(dense, models.Year{Year: y})
	}

	return dense
}
