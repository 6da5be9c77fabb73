package api_test

import (
	"context"

	"github.com/oatlas/oatlas/internal/models"
)

// mockEntityRepo returns configured responses for entity operations.
type mockEntityRepo struct {
	getFn  func(ctx context.Context, t models.EntityType, id string) (*models.Entity, error)
	listFn func(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error)
}

func (m *mockEntityRepo) Get(ctx context.Context, t models.EntityType, id string) (*models.Entity, error) {
	return m.getFn(ctx, t, id)
}

func (m *mockEntityRepo) List(ctx context.Context, t models.EntityType, q models.Query) (*models.QueryResult, error) {
	return m.listFn(ctx, t, q)
}

// mockSearchRepo returns configured responses for search operations.
type mockSearchRepo struct {
	searchFn func(ctx context.Context, text string, entityType models.EntityType, page, limit int) (*models.QueryResult, error)
}

func (m *mockSearchRepo) Search(ctx context.Context, text string, entityType models.EntityType, page, limit int) (*models.QueryResult, error) {
	return m.searchFn(ctx, text, entityType, page, limit)
}

// mockDownloadRepo returns configured responses for archive operations.
type mockDownloadRepo struct {
	archiveFn func(ctx context.Context, t models.EntityType, id string) ([]byte, string, error)
}

func (m *mockDownloadRepo) Archive(ctx context.Context, t models.EntityType, id string) ([]byte, string, error) {
	return m.archiveFn(ctx, t, id)
}
