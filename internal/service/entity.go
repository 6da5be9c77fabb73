// Package service implements the request-scoped operations of the API:
// entity lookup, list queries, search, and download archives. Every
// operation is a pure function of (snapshot, parameters); nothing here
// mutates an entity.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/query"
	"github.com/oatlas/oatlas/internal/store"
)

// SnapshotSource provides the current entity snapshot.
type SnapshotSource interface {
	Snapshot() (*store.Snapshot, error)
}

// EntityService serves single-entity lookups and list queries.
type EntityService struct {
	source SnapshotSource
	log    *logrus.Logger
}

// NewEntityService creates an EntityService.
func NewEntityService(source SnapshotSource, log *logrus.Logger) *EntityService {
	return &EntityService{source: source, log: log}
}

// Get returns one entity by type and id.
func (s *EntityService) Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error) {
	snap, err := s.source.Snapshot()
	if err != nil {
		return nil, err
	}

	e, ok := snap.Get(t, id)
	if !ok {
		return nil, models.ErrEntityNotFound
	}

	return e, nil
}

// List filters, sorts, and paginates the collection of the given type. The
// observed bounds cover the post-filter, pre-pagination set. The context is
// checked between pipeline stages so cancelled requests stop early.
func (s *EntityService) List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error) {
	snap, err := s.source.Snapshot()
	if err != nil {
		return nil, err
	}

	matches := query.Filter(snap.Entities(t), q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := query.ObservedBounds(matches)

	query.Sort(matches, q.OrderBy, q.OrderDir)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, nPages := query.Paginate(matches, q.Page, q.Limit)

	return &models.QueryResult{
		Items:    items,
		NItems:   len(matches),
		Page:     q.Page,
		Limit:    q.Limit,
		NPages:   nPages,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Bounds:   bounds,
	}, nil
}
