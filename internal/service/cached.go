package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/cache"
	"github.com/oatlas/oatlas/internal/metrics"
	"github.com/oatlas/oatlas/internal/models"
)

// EntityLister is the list-query surface wrapped by the cache decorator.
type EntityLister interface {
	Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error)
	List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error)
}

// CachedEntityService decorates an EntityLister with a read-through query
// cache. Get is a plain pass-through: single-entity lookups are already an
// O(1) map hit.
type CachedEntityService struct {
	next  EntityLister
	cache cache.QueryCache
	log   *logrus.Logger
}

// NewCachedEntityService wraps next with the given cache.
func NewCachedEntityService(next EntityLister, qc cache.QueryCache, log *logrus.Logger) *CachedEntityService {
	return &CachedEntityService{next: next, cache: qc, log: log}
}

// Get passes through to the wrapped service.
func (s *CachedEntityService) Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error) {
	return s.next.Get(ctx, t, id)
}

// List serves from the cache when possible and populates it after a miss.
func (s *CachedEntityService) List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error) {
	key := cache.Key(t, q)

	if result, ok := s.cache.Get(ctx, key); ok {
		metrics.CacheHitsTotal.Inc()

		return result, nil
	}

	metrics.CacheMissesTotal.Inc()

	result, err := s.next.List(ctx, t, q)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, result)

	return result, nil
}
