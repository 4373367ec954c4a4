package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/rogerio-castellano/asset-dashboard/internal/models"
)

// ItemSource lists one page of items from the external listing API.
type ItemSource interface {
	ListPage(ctx context.Context, skip, limit int) ([]models.Item, error)
}

// ItemCache holds the full item population for the current session. It is
// populated by sequential paged retrieval and replaced wholesale: readers
// observe either the previous complete set or the new complete set, never
// a partial mix.
type ItemCache struct {
	source   ItemSource
	pageSize int
	maxItems int

	mu        sync.RWMutex
	items     []models.Item
	installed uint64 // generation of the currently installed set
	nextGen   uint64 // generation handed to the most recent load
}

func NewItemCache(source ItemSource, pageSize, maxItems int) *ItemCache {
	return &ItemCache{
		source:   source,
		pageSize: pageSize,
		maxItems: maxItems,
	}
}

// Load fetches every page of items and installs the assembled set. On any
// page failure the whole load fails and the prior cache is left untouched.
// Concurrent loads are permitted; a load that finishes after a newer one
// has already installed its result is discarded.
func (c *ItemCache) Load(ctx context.Context) error {
	gen := c.beginLoad()

	var all []models.Item
	skip := 0
	for {
		page, err := c.source.ListPage(ctx, skip, c.pageSize)
		if err != nil {
			return fmt.Errorf("bulk item load failed at offset %d: %w", skip, err)
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			break
		}
		if len(all) >= c.maxItems {
			all = all[:c.maxItems]
			break
		}
		skip += c.pageSize
	}

	c.install(gen, all)
	return nil
}

func (c *ItemCache) beginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextGen++
	return c.nextGen
}

// install atomically replaces the cached set, unless a load that started
// later has already installed its result.
func (c *ItemCache) install(gen uint64, items []models.Item) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen <= c.installed {
		return false
	}
	c.items = items
	c.installed = gen
	return true
}

// Items returns the cached set together with its generation. The returned
// slice must be treated as read-only.
func (c *ItemCache) Items() ([]models.Item, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items, c.installed
}

// Version returns the generation of the installed set, 0 before any load.
func (c *ItemCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.installed
}

func (c *ItemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace installs a set directly, bypassing the source. Used by tests.
func (c *ItemCache) Replace(items []models.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextGen++
	c.items = items
	c.installed = c.nextGen
}

func (c *ItemCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
