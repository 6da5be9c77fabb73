// Package search provides an in-memory text index over entity names and
// acronyms. The index is built once per snapshot and is immutable afterwards,
// so lookups need no locking. Matching runs in three ranked tiers: exact
// acronym, name-token prefix, and fuzzy.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/oatlas/oatlas/internal/models"
)

// Config holds the empirically tuned matching thresholds. They are
// configuration rather than constants so they can be validated independently
// of the matching algorithm.
type Config struct {
	// MinAcronymLen is the minimum length of an all-uppercase query for
	// acronym mode to engage.
	MinAcronymLen int

	// FuzzyMaxDistance is the maximum edit distance for a fuzzy token match.
	FuzzyMaxDistance int

	// FuzzyMinTokenLen is the minimum query token length eligible for fuzzy
	// matching; shorter tokens only match exactly or by prefix.
	FuzzyMinTokenLen int
}

// DefaultConfig returns the tuned default thresholds.
func DefaultConfig() Config {
	return Config{
		MinAcronymLen:    2,
		FuzzyMaxDistance: 1,
		FuzzyMinTokenLen: 4,
	}
}

// entry is one indexed entity with its precomputed tokens.
type entry struct {
	ent    models.Entity
	pos    int
	tokens []string
}

// Index is an immutable text index over a set of entities.
type Index struct {
	cfg      Config
	entries  []entry
	acronyms map[string][]int
	postings map[string][]int
	tokens   []string
}

// Build indexes the given entity collections in order. The input slices are
// read, never retained or mutated.
func Build(cfg Config, collections ...[]models.Entity) *Index {
	ix := &Index{
		cfg:      cfg,
		acronyms: make(map[string][]int),
		postings: make(map[string][]int),
	}

	for _, entities := range collections {
		for _, e := range entities {
			ix.add(e)
		}
	}

	ix.tokens = make([]string, 0, len(ix.postings))
	for tok := range ix.postings {
		ix.tokens = append(ix.tokens, tok)
	}
	sort.Strings(ix.tokens)

	return ix
}

func (ix *Index) add(e models.Entity) {
	idx := len(ix.entries)
	tokens := Tokenize(e.Name)
	ix.entries = append(ix.entries, entry{ent: e, pos: idx, tokens: tokens})

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		ix.postings[tok] = append(ix.postings[tok], idx)
	}

	for _, a := range e.Acronyms {
		key := strings.ToUpper(a)
		ix.acronyms[key] = append(ix.acronyms[key], idx)
	}
}

// Size returns the number of indexed entities.
func (ix *Index) Size() int { return len(ix.entries) }

// Tokenize lowercases s and splits it into letter/digit runs.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// prefixPostings returns the union of posting lists for every indexed token
// with the given prefix.
func (ix *Index) prefixPostings(prefix string) []int {
	start := sort.SearchStrings(ix.tokens, prefix)

	var out []int
	for i := start; i < len(ix.tokens) && strings.HasPrefix(ix.tokens[i], prefix); i++ {
		out = append(out, ix.postings[ix.tokens[i]]...)
	}

	return out
}

// fuzzyPostings returns the union of posting lists for indexed tokens within
// cfg.FuzzyMaxDistance edits of tok.
func (ix *Index) fuzzyPostings(tok string) []int {
	var out []int
	for _, cand := range ix.tokens {
		if abs(len(cand)-len(tok)) > ix.cfg.FuzzyMaxDistance {
			continue
		}
		if editDistance(tok, cand, ix.cfg.FuzzyMaxDistance) <= ix.cfg.FuzzyMaxDistance {
			out = append(out, ix.postings[cand]...)
		}
	}

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
