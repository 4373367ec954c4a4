package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

// Session owns the two pieces of shared mutable state of a dashboard: the
// cached item population and the current filter spec. All mutation goes
// through a single lock, and every view is recomputed wholesale from
// (cache, spec); the snapshot is never patched in place.
type Session struct {
	cache *repo.ItemCache

	mu   sync.Mutex
	spec FilterSpec

	// Last computed result, keyed by (cache generation, spec key).
	memoGen      uint64
	memoKey      string
	memoValid    bool
	memoFiltered []models.Item
	memoSnapshot Snapshot
}

func NewSession(cache *repo.ItemCache) *Session {
	return &Session{cache: cache}
}

// SetFilters replaces the current filter spec.
func (s *Session) SetFilters(spec FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = spec
}

func (s *Session) Filters() FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Refresh reloads the item population. The cache swaps the set atomically,
// so a recomputation either sees the old complete set or the new one.
func (s *Session) Refresh(ctx context.Context) error {
	return s.cache.Load(ctx)
}

// Recompute filters and aggregates the cached population under the current
// spec. Results are memoized on (cache generation, spec key): repeated
// recomputations with unchanged inputs return the identical snapshot.
func (s *Session) Recompute() ([]models.Item, Snapshot) {
	return s.RecomputeAt(time.Now())
}

// RecomputeAt is Recompute with an injected clock for the age figures.
func (s *Session) RecomputeAt(now time.Time) ([]models.Item, Snapshot) {
	items, gen := s.cache.Items()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.spec.Key()
	if s.memoValid && s.memoGen == gen && s.memoKey == key {
		return s.memoFiltered, s.memoSnapshot
	}

	filtered := Apply(items, s.spec)
	snap := AggregateAt(filtered, now)

	s.memoGen = gen
	s.memoKey = key
	s.memoValid = true
	s.memoFiltered = filtered
	s.memoSnapshot = snap

	return filtered, snap
}

// CacheVersion exposes the installed cache generation, 0 before any load.
func (s *Session) CacheVersion() uint64 {
	return s.cache.Version()
}
