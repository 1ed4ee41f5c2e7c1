package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// Ensure CatalogCache implements the interface.
var _ driven.CatalogCache = (*CatalogCache)(nil)

// CatalogCache is an in-memory implementation of driven.CatalogCache.
type CatalogCache struct {
	mu        sync.RWMutex
	snapshots map[string]domain.CatalogSnapshot
}

// NewCatalogCache creates a new in-memory catalog cache.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{
		snapshots: make(map[string]domain.CatalogSnapshot),
	}
}

// SaveSnapshot stores or replaces the snapshot for a source.
func (c *CatalogCache) SaveSnapshot(_ context.Context, source string, snapshot *domain.CatalogSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[source] = cloneSnapshot(snapshot)
	return nil
}

// LoadSnapshot returns the last snapshot for a source.
func (c *CatalogCache) LoadSnapshot(_ context.Context, source string) (*domain.CatalogSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.snapshots[source]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneSnapshot(&snapshot)
	return &clone, nil
}

func cloneSnapshot(s *domain.CatalogSnapshot) domain.CatalogSnapshot {
	out := domain.CatalogSnapshot{
		Version:    s.Version,
		FetchedAt:  s.FetchedAt,
		SlideTypes: make(map[string][]string, len(s.SlideTypes)),
	}
	for k, v := range s.SlideTypes {
		out.SlideTypes[k] = append([]string(nil), v...)
	}
	return out
}
