package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oatlas/oatlas/internal/dbpool"
	"github.com/oatlas/oatlas/internal/models"
)

// PostgresLoader reads the entity corpus from the oa_entities table written
// by the importer. Each row carries the full entity document as JSONB; rows
// are returned in import order so snapshot order is stable across reloads.
type PostgresLoader struct {
	pool *dbpool.Pool
}

// NewPostgresLoader creates a loader backed by the given pool.
func NewPostgresLoader(pool *dbpool.Pool) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

// Load fetches every entity of the given type.
func (l *PostgresLoader) Load(ctx context.Context, entityType models.EntityType) ([]models.Entity, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT doc FROM oa_entities WHERE entity_type = $1 ORDER BY ord`,
		string(entityType))
	if err != nil {
		return nil, fmt.Errorf("querying %s corpus: %w", entityType.Plural(), err)
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}

		var e models.Entity
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("decoding entity document: %w", err)
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s corpus: %w", entityType.Plural(), err)
	}

	return entities, nil
}
