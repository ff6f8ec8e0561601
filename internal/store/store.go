// Package store holds the current snapshot and its derived indexes. A single
// writer (the loader path) replaces the contents wholesale; everything else
// reads through the View interface and must treat returned slices as
// immutable.
package store

import (
	"sync"
	"time"

	"github.com/AI2HU/tubedash/internal/models"
	"github.com/AI2HU/tubedash/internal/normalize"
)

// View is the read-only surface consumed by the query engine and the metric
// projections.
type View interface {
	Snapshot() *models.Snapshot
	TagList() []string
	ByTag24() map[string]models.TagAggregate
	Status() models.LoadStatus
}

// Store is the concrete snapshot holder.
type Store struct {
	mu      sync.RWMutex
	snap    *models.Snapshot
	derived normalize.Derived
	status  models.LoadStatus
}

// New creates an empty store. Until the first Replace, every collection reads
// as empty.
func New() *Store {
	return &Store{
		snap: &models.Snapshot{},
		derived: normalize.Derived{
			ByTag24: map[string]models.TagAggregate{},
		},
	}
}

// Replace installs a freshly loaded snapshot and its derived indexes.
func (s *Store) Replace(snap *models.Snapshot, derived normalize.Derived, failedKeys []string, loaded int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	s.derived = derived
	s.status = models.LoadStatus{
		LoadedAt:   time.Now(),
		FailedKeys: failedKeys,
		Loaded:     loaded,
	}
}

// Snapshot returns the current snapshot. Callers must not mutate it.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// TagList returns the sorted tag universe.
func (s *Store) TagList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived.TagList
}

// ByTag24 returns the per-tag 24h aggregate table.
func (s *Store) ByTag24() map[string]models.TagAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.derived.ByTag24
}

// Status reports the most recent load.
func (s *Store) Status() models.LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
