package search

import (
	"context"
	"sort"
	"strings"

	"github.com/oatlas/oatlas/internal/models"
)

// Match tiers, in ranking order.
const (
	tierAcronym = iota
	tierPrefix
	tierFuzzy
)

// Search returns the entities matching text, best matches first. Ranking is
// exact acronym > token prefix > fuzzy; ties break by n_outputs descending,
// then by original index order so repeated queries are deterministic. An
// empty or whitespace-only query returns no matches. entityType narrows the
// results when non-empty.
//
// The context is checked between matching phases so a superseded
// search-as-you-type request stops wasting work.
func (ix *Index) Search(ctx context.Context, text string, entityType models.EntityType) ([]models.Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	// best tier seen per entry index.
	best := make(map[int]int)
	record := func(indices []int, tier int) {
		for _, idx := range indices {
			if cur, ok := best[idx]; !ok || tier < cur {
				best[idx] = tier
			}
		}
	}

	if ix.isAcronymQuery(text) {
		record(ix.acronyms[strings.ToUpper(text)], tierAcronym)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qTokens := Tokenize(text)
	record(ix.prefixMatches(qTokens), tierPrefix)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, tok := range qTokens {
		if len(tok) < ix.cfg.FuzzyMinTokenLen {
			continue
		}
		record(ix.fuzzyPostings(tok), tierFuzzy)

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return ix.rank(best, entityType), nil
}

// isAcronymQuery reports whether text engages acronym mode: at least
// MinAcronymLen characters, entirely uppercase, containing a letter.
func (ix *Index) isAcronymQuery(text string) bool {
	if len([]rune(text)) < ix.cfg.MinAcronymLen {
		return false
	}

	return text == strings.ToUpper(text) && text != strings.ToLower(text)
}

// prefixMatches returns entries where every query token is a prefix of some
// name token. Multi-token queries intersect per-token candidates.
func (ix *Index) prefixMatches(qTokens []string) []int {
	if len(qTokens) == 0 {
		return nil
	}

	var result map[int]struct{}
	for _, tok := range qTokens {
		candidates := make(map[int]struct{})
		for _, idx := range ix.prefixPostings(tok) {
			if result == nil {
				candidates[idx] = struct{}{}
				continue
			}
			if _, ok := result[idx]; ok {
				candidates[idx] = struct{}{}
			}
		}
		result = candidates
		if len(result) == 0 {
			return nil
		}
	}

	out := make([]int, 0, len(result))
	for idx := range result {
		out = append(out, idx)
	}

	return out
}

// rank orders the matched entries and materializes them as entities.
func (ix *Index) rank(best map[int]int, entityType models.EntityType) []models.Entity {
	type ranked struct {
		idx  int
		tier int
	}

	matches := make([]ranked, 0, len(best))
	for idx, tier := range best {
		if entityType != "" && ix.entries[idx].ent.EntityType != entityType {
			continue
		}
		matches = append(matches, ranked{idx: idx, tier: tier})
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}

		na := ix.entries[a.idx].ent.Stats.NOutputs
		nb := ix.entries[b.idx].ent.Stats.NOutputs
		if na != nb {
			return na > nb
		}

		return ix.entries[a.idx].pos < ix.entries[b.idx].pos
	})

	out := make([]models.Entity, len(matches))
	for i, m := range matches {
		out[i] = ix.entries[m.idx].ent
	}

	return out
}
