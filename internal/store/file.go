package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oatlas/oatlas/internal/models"
)

// FileLoader reads the entity corpus from JSON array files produced by the
// data pipeline: <dir>/countries.json and <dir>/institutions.json.
type FileLoader struct {
	Dir string
}

// NewFileLoader creates a loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{Dir: dir}
}

// Load reads and decodes one collection file.
func (l *FileLoader) Load(ctx context.Context, entityType models.EntityType) ([]models.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.Dir, entityType.Plural()+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}

	var entities []models.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("decoding corpus file %s: %w", path, err)
	}

	return entities, nil
}
