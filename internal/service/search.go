package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oatlas/oatlas/internal/metrics"
	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/query"
)

// SearchService serves ranked text searches over the snapshot's index.
type SearchService struct {
	source SnapshotSource
	log    *logrus.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(source SnapshotSource, log *logrus.Logger) *SearchService {
	return &SearchService{source: source, log: log}
}

// Search runs a ranked text search and paginates the result. entityType
// narrows the matches when non-empty. Pagination semantics match list
// queries: out-of-range pages return empty items with the true total.
func (s *SearchService) Search(ctx context.Context, text string, entityType models.EntityType, page, limit int) (*models.QueryResult, error) {
	snap, err := s.source.Snapshot()
	if err != nil {
		return nil, err
	}

	matches, err := snap.Index().Search(ctx, text, entityType)
	if err != nil {
		return nil, err
	}

	metrics.SearchesTotal.Inc()

	items, nPages := query.Paginate(matches, page, limit)

	return &models.QueryResult{
		Items:  items,
		NItems: len(matches),
		Page:   page,
		Limit:  limit,
		NPages: nPages,
		Bounds: query.ObservedBounds(matches),
	}, nil
}
