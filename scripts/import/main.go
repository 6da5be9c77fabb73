// Package main provides a standalone import script that loads open access
// statistics entities into PostgreSQL for the atlas server.
//
// Input is either a directory with countries.json and institutions.json,
// or a SQLite corpus file with an entities table.
//
// Usage:
//
//	JSON_DIR=/path/to/data DATABASE_URL=postgres://... go run ./scripts/import
//	SQLITE_PATH=/path/to/corpus.sqlite DATABASE_URL=postgres://... go run ./scripts/import
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

// config holds environment-driven import settings.
type config struct {
	JSONDir     string
	SQLitePath  string
	DatabaseURL string
	DryRun      bool
}

// skippedEntity records an entity rejected during validation.
type skippedEntity struct {
	EntityType string
	ID         string
	Reason     string
}

// report holds the final import summary.
type report struct {
	Source              string
	Target              string
	CountriesRead       int
	InstitutionsRead    int
	Inserted            int
	Skipped             int
	CountriesVerified   int
	InstitutionsVerifed int
	SkippedEntities     []skippedEntity
	SpotChecks          []string
	Duration            time.Duration
	DryRun              bool
	Err                 error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if (cfg.JSONDir == "") == (cfg.SQLitePath == "") {
		slog.Error("set exactly one of JSON_DIR or SQLITE_PATH")
		os.Exit(1)
	}

	slog.Info("starting import",
		"json_dir", cfg.JSONDir,
		"sqlite", cfg.SQLitePath,
		"dry_run", cfg.DryRun,
	)

	start := time.Now()
	r, err := runImport(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("import failed", "error", err)
	}
	printReport(&r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		JSONDir:     os.Getenv("JSON_DIR"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

// runImport executes the full import pipeline.
func runImport(ctx context.Context, cfg config) (report, error) {
	r := report{
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	var countries, institutions []entity
	var err error
	if cfg.JSONDir != "" {
		r.Source = cfg.JSONDir
		countries, institutions, err = readJSONDir(cfg.JSONDir)
	} else {
		r.Source = cfg.SQLitePath
		countries, institutions, err = readSQLite(ctx, cfg.SQLitePath)
	}
	if err != nil {
		return r, fmt.Errorf("read source: %w", err)
	}
	r.CountriesRead = len(countries)
	r.InstitutionsRead = len(institutions)
	slog.Info("read entities", "countries", r.CountriesRead, "institutions", r.InstitutionsRead)

	// Validate before touching the database.
	countries, skipped := validateEntities("country", countries)
	r.SkippedEntities = append(r.SkippedEntities, skipped...)
	institutions, skipped = validateEntities("institution", institutions)
	r.SkippedEntities = append(r.SkippedEntities, skipped...)
	r.Skipped = len(r.SkippedEntities)
	if r.Skipped > 0 {
		slog.Warn("skipped invalid entities", "count", r.Skipped)
	}

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.Inserted = len(countries) + len(institutions)
		return r, nil
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	// Replace the whole snapshot so ord stays consistent per type.
	if _, err := tx.Exec(ctx, `DELETE FROM oa_entities`); err != nil {
		return r, fmt.Errorf("clear table: %w", err)
	}

	if err := insertEntities(ctx, tx, "country", countries); err != nil {
		return r, fmt.Errorf("insert countries: %w", err)
	}
	if err := insertEntities(ctx, tx, "institution", institutions); err != nil {
		return r, fmt.Errorf("insert institutions: %w", err)
	}
	r.Inserted = len(countries) + len(institutions)
	slog.Info("inserted entities", "count", r.Inserted)

	r.CountriesVerified, err = countRows(ctx, tx, "country")
	if err != nil {
		return r, fmt.Errorf("verify country count: %w", err)
	}
	r.InstitutionsVerifed, err = countRows(ctx, tx, "institution")
	if err != nil {
		return r, fmt.Errorf("verify institution count: %w", err)
	}

	r.SpotChecks, err = spotCheck(ctx, tx, countries, institutions)
	if err != nil {
		return r, fmt.Errorf("spot check: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}
