package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// fakeSource serves a fixed population page by page and can fail at a
// chosen offset.
type fakeSource struct {
	items  []models.Item
	failAt int // offset at which ListPage errors, -1 for never
	calls  int
}

func (f *fakeSource) ListPage(_ context.Context, skip, limit int) ([]models.Item, error) {
	f.calls++
	if f.failAt >= 0 && skip >= f.failAt {
		return nil, errors.New("upstream unavailable")
	}
	if skip >= len(f.items) {
		return nil, nil
	}
	end := skip + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	return f.items[skip:end], nil
}

func population(n int) []models.Item {
	items := make([]models.Item, n)
	for i := range items {
		items[i] = models.Item{ID: i + 1, Status: models.StatusApproved}
	}
	return items
}

func TestItemCacheLoad_MultiPage(t *testing.T) {
	src := &fakeSource{items: population(25), failAt: -1}
	cache := NewItemCache(src, 10, 100)

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 25 {
		t.Errorf("expected 25 items, got %d", cache.Len())
	}
	// 3 pages: 10, 10, 5. The short page ends the loop.
	if src.calls != 3 {
		t.Errorf("expected 3 page fetches, got %d", src.calls)
	}

	items, gen := cache.Items()
	if gen != 1 {
		t.Errorf("expected generation 1 after the first load, got %d", gen)
	}
	if items[0].ID != 1 || items[24].ID != 25 {
		t.Errorf("pages assembled out of order: first=%d last=%d", items[0].ID, items[24].ID)
	}
}

func TestItemCacheLoad_ExactPageBoundary(t *testing.T) {
	src := &fakeSource{items: population(20), failAt: -1}
	cache := NewItemCache(src, 10, 100)

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 20 {
		t.Errorf("expected 20 items, got %d", cache.Len())
	}
}

func TestItemCacheLoad_Cap(t *testing.T) {
	src := &fakeSource{items: population(50), failAt: -1}
	cache := NewItemCache(src, 10, 30)

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.Len() != 30 {
		t.Errorf("expected the population truncated to the cap, got %d", cache.Len())
	}
}

func TestItemCacheLoad_PageFailureKeepsPriorSet(t *testing.T) {
	src := &fakeSource{items: population(25), failAt: -1}
	cache := NewItemCache(src, 10, 100)
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	src.failAt = 20
	if err := cache.Load(context.Background()); err == nil {
		t.Fatal("expected the failed load to error")
	}

	items, gen := cache.Items()
	if len(items) != 25 || gen != 1 {
		t.Errorf("a failed load must leave the prior set untouched, got %d items at gen %d", len(items), gen)
	}
}

func TestItemCacheInstall_StaleLoadDiscarded(t *testing.T) {
	cache := NewItemCache(nil, 10, 100)

	older := cache.beginLoad()
	newer := cache.beginLoad()

	if !cache.install(newer, population(5)) {
		t.Fatal("the newer load should install")
	}
	if cache.install(older, population(99)) {
		t.Error("a load that started earlier must not overwrite a newer set")
	}
	if cache.Len() != 5 {
		t.Errorf("expected the newer set to survive, got %d items", cache.Len())
	}
}

func TestItemCacheReplaceAndClear(t *testing.T) {
	cache := NewItemCache(nil, 10, 100)
	if cache.Version() != 0 {
		t.Errorf("expected version 0 before any load, got %d", cache.Version())
	}

	cache.Replace(population(3))
	if cache.Len() != 3 || cache.Version() != 1 {
		t.Errorf("unexpected state after replace: len=%d version=%d", cache.Len(), cache.Version())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("expected an empty cache after clear, got %d items", cache.Len())
	}
}
