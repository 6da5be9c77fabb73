package query

import "github.com/oatlas/oatlas/internal/models"

// Paginate slices one page out of the ordered matches. NPages is
// ceil(len(ordered)/limit); a page index at or beyond NPages yields an empty
// page while the caller's total count stays truthful.
func Paginate(ordered []models.Entity, page, limit int) (items []models.Entity, nPages int) {
	if limit < 1 {
		limit = 1
	}

	nPages = (len(ordered) + limit - 1) / limit

	// page*limit can overflow for huge page indexes, so bound page by nPages
	// before multiplying.
	if page < 0 || page >= nPages {
		return []models.Entity{}, nPages
	}

	start := page * limit
	end := start + limit
	if end > len(ordered) {
		end = len(ordered)
	}

	return ordered[start:end], nPages
}
