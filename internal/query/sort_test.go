package query

import (
	"testing"

	"github.com/oatlas/oatlas/internal/models"
)

func TestSortFields(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		dir     models.OrderDir
		wantIDs []string
	}{
		{
			name: "p_outputs_open descending default", orderBy: "p_outputs_open", dir: models.OrderDsc,
			wantIDs: []string{"GBR", "NZL", "AUS", "inst1"},
		},
		{
			name: "p_outputs_open ascending", orderBy: "p_outputs_open", dir: models.OrderAsc,
			wantIDs: []string{"inst1", "AUS", "NZL", "GBR"},
		},
		{
			name: "n_outputs ascending", orderBy: "n_outputs", dir: models.OrderAsc,
			wantIDs: []string{"inst1", "NZL", "AUS", "GBR"},
		},
		{
			name: "n_outputs_open descending", orderBy: "n_outputs_open", dir: models.OrderDsc,
			wantIDs: []string{"GBR", "AUS", "NZL", "inst1"},
		},
		{
			name: "name ascending case-insensitive", orderBy: "name", dir: models.OrderAsc,
			wantIDs: []string{"AUS", "inst1", "NZL", "GBR"},
		},
		{
			name: "name descending", orderBy: "name", dir: models.OrderDsc,
			wantIDs: []string{"GBR", "NZL", "inst1", "AUS"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entities := testEntities()
			Sort(entities, tc.orderBy, tc.dir)
			for i, want := range tc.wantIDs {
				if entities[i].ID != want {
					t.Errorf("index %d: got %q, want %q (order %v)", i, entities[i].ID, want, ids(entities))
				}
			}
		})
	}
}

// Equal sort keys keep their original relative order, in both directions.
// Reversing the comparator instead of the slice is what makes the
// descending case hold.
func TestSortStableTies(t *testing.T) {
	entities := []models.Entity{
		{ID: "a", Stats: models.Stats{NOutputs: 10}},
		{ID: "b", Stats: models.Stats{NOutputs: 10}},
		{ID: "c", Stats: models.Stats{NOutputs: 10}},
		{ID: "d", Stats: models.Stats{NOutputs: 5}},
	}

	asc := append([]models.Entity(nil), entities...)
	Sort(asc, "n_outputs", models.OrderAsc)
	if got := ids(asc); got[0] != "d" || got[1] != "a" || got[2] != "b" || got[3] != "c" {
		t.Errorf("ascending ties reordered: %v", got)
	}

	dsc := append([]models.Entity(nil), entities...)
	Sort(dsc, "n_outputs", models.OrderDsc)
	if got := ids(dsc); got[0] != "a" || got[1] != "b" || got[2] != "c" || got[3] != "d" {
		t.Errorf("descending ties reordered: %v", got)
	}
}

func TestSortUnknownFieldFallsBack(t *testing.T) {
	entities := testEntities()
	Sort(entities, "nonsense", models.OrderDsc)
	if entities[0].ID != "GBR" {
		t.Errorf("expected p_outputs_open fallback, got %v", ids(entities))
	}
}
