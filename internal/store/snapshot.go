// Package store holds the read-only entity snapshot and its loaders. A
// snapshot is built once from a loader, finalized (derived statistics, id
// lookup, search index), and then served unchanged. Reload swaps the whole
// snapshot atomically: in-flight requests keep the snapshot they started
// with.
package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oatlas/oatlas/internal/models"
	"github.com/oatlas/oatlas/internal/search"
	"github.com/oatlas/oatlas/internal/stats"
)

// Loader fetches the raw entity collection for one entity type from a
// backing corpus.
type Loader interface {
	Load(ctx context.Context, entityType models.EntityType) ([]models.Entity, error)
}

// Snapshot is an immutable point-in-time view of the entity corpus plus the
// search index built over it.
type Snapshot struct {
	countries    []models.Entity
	institutions []models.Entity
	byID         map[models.EntityType]map[string]int
	index        *search.Index
	builtAt      time.Time
}

// BuildSnapshot finalizes the given collections into a servable snapshot:
// derived percentages are computed once here, the id lookup is built, and the
// search index is constructed over both collections.
func BuildSnapshot(countries, institutions []models.Entity, searchCfg search.Config) *Snapshot {
	for i := range countries {
		countries[i].EntityType = models.TypeCountry
		stats.FinalizeEntity(&countries[i])
	}
	for i := range institutions {
		institutions[i].EntityType = models.TypeInstitution
		stats.FinalizeEntity(&institutions[i])
	}

	byID := map[models.EntityType]map[string]int{
		models.TypeCountry:     make(map[string]int, len(countries)),
		models.TypeInstitution: make(map[string]int, len(institutions)),
	}
	for i, e := range countries {
		byID[models.TypeCountry][e.ID] = i
	}
	for i, e := range institutions {
		byID[models.TypeInstitution][e.ID] = i
	}

	return &Snapshot{
		countries:    countries,
		institutions: institutions,
		byID:         byID,
		index:        search.Build(searchCfg, countries, institutions),
		builtAt:      time.Now(),
	}
}

// Entities returns the full collection for the given type in corpus order.
// Callers must not mutate the returned slice.
func (s *Snapshot) Entities(t models.EntityType) []models.Entity {
	if t == models.TypeCountry {
		return s.countries
	}

	return s.institutions
}

// Get looks up one entity by type and id.
func (s *Snapshot) Get(t models.EntityType, id string) (*models.Entity, bool) {
	idx, ok := s.byID[t][id]
	if !ok {
		return nil, false
	}

	e := s.Entities(t)[idx]

	return &e, true
}

// Index returns the search index built over this snapshot.
func (s *Snapshot) Index() *search.Index { return s.index }

// BuiltAt returns when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Store serves the current snapshot and reloads it from a Loader.
type Store struct {
	loader    Loader
	searchCfg search.Config
	log       *logrus.Logger
	snapshot  atomic.Pointer[Snapshot]
}

// New creates a Store. Call Reload before serving.
func New(loader Loader, searchCfg search.Config, log *logrus.Logger) *Store {
	return &Store{loader: loader, searchCfg: searchCfg, log: log}
}

// Snapshot returns the current snapshot, or an error when none is loaded yet.
func (st *Store) Snapshot() (*Snapshot, error) {
	s := st.snapshot.Load()
	if s == nil {
		return nil, models.ErrSnapshotUnavailable
	}

	return s, nil
}

// Reload loads both collections concurrently, builds a fresh snapshot, and
// swaps it in atomically. On error the previous snapshot keeps serving.
func (st *Store) Reload(ctx context.Context) error {
	var countries, institutions []models.Entity

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countries, err = st.loader.Load(gctx, models.TypeCountry)
		if err != nil {
			return fmt.Errorf("loading countries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		institutions, err = st.loader.Load(gctx, models.TypeInstitution)
		if err != nil {
			return fmt.Errorf("loading institutions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	snap := BuildSnapshot(countries, institutions, st.searchCfg)
	st.snapshot.Store(snap)

	st.log.WithFields(logrus.Fields{
		"countries":    len(countries),
		"institutions": len(institutions),
		"indexed":      snap.index.Size(),
	}).Info("entity snapshot loaded")

	return nil
}
