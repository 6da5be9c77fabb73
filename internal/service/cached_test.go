package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/query"
)

func TestCachedListMissThenHit(t *testing.T) {
	want := &models.QueryResult{NItems: 2}
	lister := &mockLister{
		list: func(_ context.Context, _ models.EntityType, _ models.Query) (*models.QueryResult, error) {
			return want, nil
		},
	}
	qc := newMockQueryCache()
	svc := NewCachedEntityService(lister, qc, testLogger())

	q := query.Normalize(url.Values{})

	// First call misses and populates the cache.
	got, err := svc.List(context.Background(), models.TypeCountry, q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.NItems != 2 {
		t.Errorf("got %+v", got)
	}
	if len(lister.calls) != 1 || qc.sets != 1 {
		t.Errorf("expected one inner call and one cache set, got calls=%v sets=%d", lister.calls, qc.sets)
	}

	// Second call is served from the cache.
	got, err = svc.List(context.Background(), models.TypeCountry, q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.NItems != 2 {
		t.Errorf("got %+v", got)
	}
	if len(lister.calls) != 1 {
		t.Errorf("cache hit must not call the inner service: %v", lister.calls)
	}
}

// Different collections and different queries must not share entries.
func TestCachedListKeyIsolation(t *testing.T) {
	calls := 0
	lister := &mockLister{
		list: func(_ context.Context, t models.EntityType, _ models.Query) (*models.QueryResult, error) {
			calls++
			return &models.QueryResult{NItems: calls}, nil
		},
	}
	svc := NewCachedEntityService(lister, newMockQueryCache(), testLogger())

	q := query.Normalize(url.Values{})
	if _, err := svc.List(context.Background(), models.TypeCountry, q); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(context.Background(), models.TypeInstitution, q); err != nil {
		t.Fatal(err)
	}

	params := url.Values{}
	params.Set("limit", "5")
	if _, err := svc.List(context.Background(), models.TypeCountry, query.Normalize(params)); err != nil {
		t.Fatal(err)
	}

	if calls != 3 {
		t.Errorf("expected 3 distinct cache keys, inner calls = %d", calls)
	}
}

func TestCachedListErrorNotCached(t *testing.T) {
	wantErr := errors.New("boom")
	fail := true
	lister := &mockLister{
		list: func(_ context.Context, _ models.EntityType, _ models.Query) (*models.QueryResult, error) {
			if fail {
				return nil, wantErr
			}
			return &models.QueryResult{NItems: 1}, nil
		},
	}
	qc := newMockQueryCache()
	svc := NewCachedEntityService(lister, qc, testLogger())

	q := query.Normalize(url.Values{})
	if _, err := svc.List(context.Background(), models.TypeCountry, q); !errors.Is(err, wantErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if qc.sets != 0 {
		t.Error("errors must not be cached")
	}

	fail = false
	got, err := svc.List(context.Background(), models.TypeCountry, q)
	if err != nil || got.NItems != 1 {
		t.Errorf("retry after error: got %+v, %v", got, err)
	}
}

func TestCachedGetPassesThrough(t *testing.T) {
	lister := &mockLister{
		get: func(_ context.Context, _ models.EntityType, id string) (*models.Entity, error) {
			return &models.Entity{ID: id}, nil
		},
	}
	qc := newMockQueryCache()
	svc := NewCachedEntityService(lister, qc, testLogger())

	e, err := svc.Get(context.Background(), models.TypeCountry, "NZL")
	if err != nil || e.ID != "NZL" {
		t.Fatalf("Get: %v, %v", e, err)
	}
	if qc.gets != 0 || qc.sets != 0 {
		t.Error("Get must bypass the query cache")
	}
}
