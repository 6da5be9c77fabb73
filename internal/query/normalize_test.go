package query

import (
	"net/url"
	"testing"

	"github.com/oatlas/oatlas/internal/models"
)

func TestNormalizeDefaults(t *testing.T) {
	q := Normalize(url.Values{})

	if !q.IDs.Empty() || !q.Countries.Empty() || !q.Regions.Empty() {
		t.Errorf("expected empty filter sets: %+v", q)
	}
	if q.MinNOutputs != 0 || q.MaxNOutputs != models.MaxNOutputs {
		t.Errorf("n_outputs range: got [%d, %d]", q.MinNOutputs, q.MaxNOutputs)
	}
	if q.MinPOutputsOpen != 0 || q.MaxPOutputsOpen != 100 {
		t.Errorf("p_outputs_open range: got [%v, %v]", q.MinPOutputsOpen, q.MaxPOutputsOpen)
	}
	if q.Page != 0 {
		t.Errorf("page: got %d, want 0", q.Page)
	}
	if q.Limit != models.DefaultLimit {
		t.Errorf("limit: got %d, want %d", q.Limit, models.DefaultLimit)
	}
	if q.OrderBy != models.DefaultOrderBy {
		t.Errorf("orderBy: got %q, want %q", q.OrderBy, models.DefaultOrderBy)
	}
	if q.OrderDir != models.OrderDsc {
		t.Errorf("orderDir: got %q, want dsc", q.OrderDir)
	}
}

func TestNormalizeClamping(t *testing.T) {
	tests := []struct {
		name  string
		param string
		value string
		check func(t *testing.T, q models.Query)
	}{
		{
			name: "limit above max clamps", param: "limit", value: "5000",
			check: func(t *testing.T, q models.Query) {
				if q.Limit != models.MaxLimit {
					t.Errorf("limit: got %d, want %d", q.Limit, models.MaxLimit)
				}
			},
		},
		{
			name: "limit zero clamps to one", param: "limit", value: "0",
			check: func(t *testing.T, q models.Query) {
				if q.Limit != 1 {
					t.Errorf("limit: got %d, want 1", q.Limit)
				}
			},
		},
		{
			name: "negative page clamps to zero", param: "page", value: "-3",
			check: func(t *testing.T, q models.Query) {
				if q.Page != 0 {
					t.Errorf("page: got %d, want 0", q.Page)
				}
			},
		},
		{
			name: "negative min clamps to zero", param: "minNOutputs", value: "-10",
			check: func(t *testing.T, q models.Query) {
				if q.MinNOutputs != 0 {
					t.Errorf("minNOutputs: got %d, want 0", q.MinNOutputs)
				}
			},
		},
		{
			name: "percentage above 100 clamps", param: "minPOutputsOpen", value: "250",
			check: func(t *testing.T, q models.Query) {
				if q.MinPOutputsOpen != 100 {
					t.Errorf("minPOutputsOpen: got %v, want 100", q.MinPOutputsOpen)
				}
			},
		},
		{
			name: "malformed int falls back", param: "limit", value: "banana",
			check: func(t *testing.T, q models.Query) {
				if q.Limit != models.DefaultLimit {
					t.Errorf("limit: got %d, want default", q.Limit)
				}
			},
		},
		{
			name: "malformed float falls back", param: "maxPOutputsOpen", value: "12x",
			check: func(t *testing.T, q models.Query) {
				if q.MaxPOutputsOpen != 100 {
					t.Errorf("maxPOutputsOpen: got %v, want 100", q.MaxPOutputsOpen)
				}
			},
		},
		{
			name: "unknown orderBy falls back", param: "orderBy", value: "salience",
			check: func(t *testing.T, q models.Query) {
				if q.OrderBy != models.DefaultOrderBy {
					t.Errorf("orderBy: got %q, want default", q.OrderBy)
				}
			},
		},
		{
			name: "unknown orderDir falls back to dsc", param: "orderDir", value: "down",
			check: func(t *testing.T, q models.Query) {
				if q.OrderDir != models.OrderDsc {
					t.Errorf("orderDir: got %q, want dsc", q.OrderDir)
				}
			},
		},
		{
			name: "asc accepted", param: "orderDir", value: "asc",
			check: func(t *testing.T, q models.Query) {
				if q.OrderDir != models.OrderAsc {
					t.Errorf("orderDir: got %q, want asc", q.OrderDir)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := url.Values{}
			params.Set(tc.param, tc.value)
			tc.check(t, Normalize(params))
		})
	}
}

func TestNormalizeSets(t *testing.T) {
	params := url.Values{}
	params.Set("countries", "NZL, AUS,,GBR ")
	params.Set("institutionTypes", "Education")

	q := Normalize(params)

	if len(q.Countries) != 3 {
		t.Fatalf("countries: got %d members, want 3", len(q.Countries))
	}
	for _, c := range []string{"NZL", "AUS", "GBR"} {
		if !q.Countries.Has(c) {
			t.Errorf("countries missing %q", c)
		}
	}
	if q.Countries.Has("") {
		t.Error("empty elements must be dropped")
	}
	if !q.InstitutionTypes.Has("Education") {
		t.Error("institutionTypes missing Education")
	}
}

// Crossed min/max bounds are preserved as-is: the filter engine resolves
// them to an empty result set, not the normalizer.
func TestNormalizePreservesCrossedBounds(t *testing.T) {
	params := url.Values{}
	params.Set("minNOutputs", "100")
	params.Set("maxNOutputs", "10")

	q := Normalize(params)
	if q.MinNOutputs != 100 || q.MaxNOutputs != 10 {
		t.Errorf("crossed bounds altered: [%d, %d]", q.MinNOutputs, q.MaxNOutputs)
	}
}
