package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/search"
	"github.com/oatlas/oatlas/internal/store"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

// snapshotSource serves a fixed snapshot, or an error when none is set.
type snapshotSource struct {
	snap *store.Snapshot
	err  error
}

func (s *snapshotSource) Snapshot() (*store.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

// newTestSource builds a snapshot source over the given raw collections.
func newTestSource(countries, institutions []models.Entity) *snapshotSource {
	return &snapshotSource{
		snap: store.BuildSnapshot(countries, institutions, search.DefaultConfig()),
	}
}

// mockLister records calls and returns configured responses.
type mockLister struct {
	mu    sync.Mutex
	calls []string

	get  func(ctx context.Context, t models.EntityType, id string) (*models.Entity, error)
	list func(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error)
}

func (m *mockLister) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockLister) Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error) {
	m.record("Get")
	return m.get(ctx, t, id)
}

func (m *mockLister) List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error) {
	m.record("List")
	return m.list(ctx, t, q)
}

// mockQueryCache is an in-memory QueryCache.
type mockQueryCache struct {
	mu      sync.Mutex
	entries map[string]*models.QueryResult
	gets    int
	sets    int
}

func newMockQueryCache() *mockQueryCache {
	return &mockQueryCache{entries: map[string]*models.QueryResult{}}
}

func (m *mockQueryCache) Get(_ context.Context, key string) (*models.QueryResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	r, ok := m.entries[key]
	return r, ok
}

func (m *mockQueryCache) Set(_ context.Context, key string, result *models.QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[key] = result
}
