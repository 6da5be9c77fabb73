package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"

	"github.com/jackc/pgx/v5"
)

// sanitizeURL removes credentials from a database URL for display.
func sanitizeURL(raw string) string {
	if raw == "" {
		return "[none]"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable URL]"
	}
	u.User = nil
	return u.String()
}

// countRows counts imported rows for one entity type.
func countRows(ctx context.Context, tx pgx.Tx, entityType string) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT count(*) FROM oa_entities WHERE entity_type = $1`, entityType,
	).Scan(&count)
	return count, err
}

// spotCheck verifies up to 5 random entities round-trip through PostgreSQL.
func spotCheck(ctx context.Context, tx pgx.Tx, countries, institutions []entity) ([]string, error) {
	type candidate struct {
		entityType string
		e          entity
	}
	var all []candidate
	for _, e := range countries {
		all = append(all, candidate{"country", e})
	}
	for _, e := range institutions {
		all = append(all, candidate{"institution", e})
	}
	if len(all) == 0 {
		return nil, nil
	}

	count := min(5, len(all))
	indices := rand.Perm(len(all))[:count]
	var checks []string

	for _, idx := range indices {
		c := all[idx]
		var pgName string
		var pgNOutputs int
		err := tx.QueryRow(ctx,
			`SELECT name, n_outputs FROM oa_entities WHERE entity_type = $1 AND id = $2`,
			c.entityType, c.e.ID,
		).Scan(&pgName, &pgNOutputs)
		if err != nil {
			checks = append(checks, fmt.Sprintf("❌ %s/%s — not found in postgres: %v", c.entityType, c.e.ID, err))
			continue
		}
		if pgName == c.e.Name && pgNOutputs == c.e.Stats.NOutputs {
			checks = append(checks, fmt.Sprintf("✅ %s/%s — name=%s, n_outputs=%d", c.entityType, c.e.ID, pgName, pgNOutputs))
		} else {
			checks = append(checks, fmt.Sprintf("❌ %s/%s — mismatch: pg(%s/%d) vs source(%s/%d)",
				c.entityType, c.e.ID, pgName, pgNOutputs, c.e.Name, c.e.Stats.NOutputs))
		}
	}
	return checks, nil
}

// printReport outputs the final import summary.
func printReport(r *report) {
	fmt.Println()
	fmt.Println("=== Atlas Import Report ===")
	if r.DryRun {
		fmt.Println("MODE: DRY RUN (no changes made)")
	}
	fmt.Printf("Source: %s\n", r.Source)
	fmt.Printf("Target: %s\n", r.Target)
	fmt.Println()
	skippedByType := map[string]int{}
	for _, s := range r.SkippedEntities {
		skippedByType[s.EntityType]++
	}
	fmt.Printf("Countries:    %d read → %d verified %s\n",
		r.CountriesRead, r.CountriesVerified,
		statusIcon(r.DryRun, r.CountriesRead-skippedByType["country"], r.CountriesVerified))
	fmt.Printf("Institutions: %d read → %d verified %s\n",
		r.InstitutionsRead, r.InstitutionsVerifed,
		statusIcon(r.DryRun, r.InstitutionsRead-skippedByType["institution"], r.InstitutionsVerifed))
	fmt.Printf("Inserted: %d, skipped: %d\n", r.Inserted, r.Skipped)

	if len(r.SkippedEntities) > 0 {
		fmt.Println("\nSkipped entities:")
		for _, s := range r.SkippedEntities {
			fmt.Printf("  - %s/%s (reason: %s)\n", s.EntityType, s.ID, s.Reason)
		}
	}

	if len(r.SpotChecks) > 0 {
		fmt.Println("\nSpot checks:")
		for _, c := range r.SpotChecks {
			fmt.Printf("  %s\n", c)
		}
	}

	fmt.Printf("\nDuration: %.1fs\n", r.Duration.Seconds())
	if r.Err != nil {
		fmt.Printf("Status: FAILED — %v\n", r.Err)
	} else {
		fmt.Println("Status: SUCCESS")
	}
}

// statusIcon returns a check or X based on count match.
func statusIcon(dryRun bool, read, verified int) string {
	if dryRun {
		return "⏳"
	}
	if read == verified {
		return "✅"
	}
	return "❌"
}
