package query

import (
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/oatlas/oatlas/internal/models"
)

func numberedEntities(n int) []models.Entity {
	out := make([]models.Entity, n)
	for i := range out {
		out[i] = models.Entity{ID: fmt.Sprintf("e%03d", i)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		wantLen    int
		wantFirst  string
		wantNPages int
	}{
		{name: "first page", total: 45, page: 0, limit: 18, wantLen: 18, wantFirst: "e000", wantNPages: 3},
		{name: "middle page", total: 45, page: 1, limit: 18, wantLen: 18, wantFirst: "e018", wantNPages: 3},
		{name: "short last page", total: 45, page: 2, limit: 18, wantLen: 9, wantFirst: "e036", wantNPages: 3},
		{name: "page past end", total: 45, page: 3, limit: 18, wantLen: 0, wantNPages: 3},
		{name: "far past end", total: 45, page: 99, limit: 18, wantLen: 0, wantNPages: 3},
		{name: "negative page", total: 45, page: -1, limit: 18, wantLen: 0, wantNPages: 3},
		{name: "page at int max", total: 45, page: math.MaxInt, limit: 18, wantLen: 0, wantNPages: 3},
		{name: "page overflows start", total: 2, page: math.MaxInt, limit: 100, wantLen: 0, wantNPages: 1},
		{name: "exact multiple", total: 36, page: 1, limit: 18, wantLen: 18, wantFirst: "e018", wantNPages: 2},
		{name: "empty set", total: 0, page: 0, limit: 18, wantLen: 0, wantNPages: 0},
		{name: "limit one", total: 3, page: 2, limit: 1, wantLen: 1, wantFirst: "e002", wantNPages: 3},
		{name: "limit larger than set", total: 5, page: 0, limit: 100, wantLen: 5, wantFirst: "e000", wantNPages: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, nPages := Paginate(numberedEntities(tc.total), tc.page, tc.limit)
			if len(items) != tc.wantLen {
				t.Fatalf("got %d items, want %d", len(items), tc.wantLen)
			}
			if nPages != tc.wantNPages {
				t.Errorf("nPages: got %d, want %d", nPages, tc.wantNPages)
			}
			if tc.wantLen > 0 && items[0].ID != tc.wantFirst {
				t.Errorf("first item: got %q, want %q", items[0].ID, tc.wantFirst)
			}
			if items == nil {
				t.Error("items must be an empty slice, not nil")
			}
		})
	}
}

// An extreme page value passes normalization intact, so the paginator itself
// must serve it as an empty page rather than computing a start offset from it.
func TestPaginateExtremeNormalizedPage(t *testing.T) {
	q := Normalize(url.Values{"page": {"9223372036854775807"}, "limit": {"100"}})

	items, nPages := Paginate(numberedEntities(2), q.Page, q.Limit)
	if len(items) != 0 {
		t.Fatalf("got %d items, want empty page", len(items))
	}
	if nPages != 1 {
		t.Errorf("nPages: got %d, want 1", nPages)
	}
}

// Walking every page in order reconstructs the full ordered set with no
// duplicates and no gaps.
func TestPaginateCoversAll(t *testing.T) {
	entities := numberedEntities(53)
	const limit = 7

	var all []models.Entity
	_, nPages := Paginate(entities, 0, limit)
	for page := 0; page < nPages; page++ {
		items, _ := Paginate(entities, page, limit)
		all = append(all, items...)
	}

	if len(all) != len(entities) {
		t.Fatalf("pages concatenate to %d items, want %d", len(all), len(entities))
	}
	for i := range all {
		if all[i].ID != entities[i].ID {
			t.Errorf("index %d: got %q, want %q", i, all[i].ID, entities[i].ID)
		}
	}
}
