package api

import (
	"context"

	"github.com/oatlas/oatlas/internal/models"
)

// EntityRepository defines the entity operations used by EntityHandler.
type EntityRepository interface {
	Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error)
	List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error)
}

// SearchRepository defines the search operations used by SearchHandler and
// the websocket live-search endpoint.
type SearchRepository interface {
	Search(ctx context.Context, text string, entityType models.EntityType, page, limit int) (*models.QueryResult, error)
}

// DownloadRepository defines the archive operation used by DownloadHandler.
type DownloadRepository interface {
	Archive(ctx context.Context, t models.EntityType, id string) (data []byte, filename string, err error)
}
