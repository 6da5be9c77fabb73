package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

// entity is one atlas entity read from the input corpus. Only the fields
// needed for validation and indexing are decoded; the raw document is
// stored verbatim.
type entity struct {
	ID    string
	Name  string
	Stats struct {
		NOutputs     int `json:"n_outputs"`
		NOutputsOpen int `json:"n_outputs_open"`
	}
	Doc json.RawMessage
}

func decodeEntity(doc []byte) (entity, error) {
	var head struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stats struct {
			NOutputs     int `json:"n_outputs"`
			NOutputsOpen int `json:"n_outputs_open"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(doc, &head); err != nil {
		return entity{}, err
	}
	return entity{
		ID:    head.ID,
		Name:  head.Name,
		Stats: head.Stats,
		Doc:   json.RawMessage(doc),
	}, nil
}

// readJSONDir reads countries.json and institutions.json from a directory.
// Both files hold a JSON array of entity documents.
func readJSONDir(dir string) (countries, institutions []entity, err error) {
	countries, err = readJSONFile(filepath.Join(dir, "countries.json"))
	if err != nil {
		return nil, nil, err
	}
	institutions, err = readJSONFile(filepath.Join(dir, "institutions.json"))
	if err != nil {
		return nil, nil, err
	}
	return countries, institutions, nil
}

func readJSONFile(path string) ([]entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	entities := make([]entity, 0, len(docs))
	for i, doc := range docs {
		e, err := decodeEntity(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", path, i, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// readSQLite reads both entity types from a SQLite corpus file. The
// entities table holds one JSON document per row; rowid order is preserved.
func readSQLite(ctx context.Context, path string) (countries, institutions []entity, err error) {
	lite, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer lite.Close()

	rows, err := lite.QueryContext(ctx,
		`SELECT entity_type, doc FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entityType string
		var doc []byte
		if err := rows.Scan(&entityType, &doc); err != nil {
			return nil, nil, fmt.Errorf("scan entity: %w", err)
		}
		e, err := decodeEntity(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s document: %w", entityType, err)
		}
		switch entityType {
		case "country":
			countries = append(countries, e)
		case "institution":
			institutions = append(institutions, e)
		default:
			return nil, nil, fmt.Errorf("unknown entity_type %q", entityType)
		}
	}
	return countries, institutions, rows.Err()
}

// validateEntities filters out entities that violate the corpus invariants.
func validateEntities(entityType string, entities []entity) ([]entity, []skippedEntity) {
	valid := make([]entity, 0, len(entities))
	var skipped []skippedEntity
	seen := make(map[string]bool, len(entities))

	for _, e := range entities {
		reason := ""
		switch {
		case e.ID == "":
			reason = "missing id"
		case e.Name == "":
			reason = "missing name"
		case seen[e.ID]:
			reason = "duplicate id"
		case e.Stats.NOutputsOpen < 0:
			reason = "negative n_outputs_open"
		case e.Stats.NOutputsOpen > e.Stats.NOutputs:
			reason = "n_outputs_open exceeds n_outputs"
		}
		if reason != "" {
			skipped = append(skipped, skippedEntity{EntityType: entityType, ID: e.ID, Reason: reason})
			continue
		}
		seen[e.ID] = true
		valid = append(valid, e)
	}
	return valid, skipped
}

// insertEntities batch-inserts entities in groups of 100, preserving the
// source ordering in the ord column.
func insertEntities(ctx context.Context, tx pgx.Tx, entityType string, entities []entity) error {
	const batchSize = 100
	for i := 0; i < len(entities); i += batchSize {
		end := min(i+batchSize, len(entities))
		if err := insertEntityBatch(ctx, tx, entityType, entities[i:end], i); err != nil {
			return fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

func insertEntityBatch(ctx context.Context, tx pgx.Tx, entityType string, batch []entity, offset int) error {
	for i := range batch {
		e := &batch[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO oa_entities (id, entity_type, name, n_outputs, doc, ord)
			 VALUES ($1,$2,$3,$4,$5,$6)
			 ON CONFLICT (entity_type, id) DO NOTHING`,
			e.ID, entityType, e.Name, e.Stats.NOutputs, []byte(e.Doc), offset+i,
		)
		if err != nil {
			return fmt.Errorf("insert %s %s: %w", entityType, e.ID, err)
		}
	}
	return nil
}
