package news

import (
	"context"
	"sync"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
)

// TrendingCache holds one computed tag-frequency batch. It replaces the
// module-level global the site grew up with: scope is explicit (construct
// one per session or per process) and it is injected into whoever needs it.
// No TTL; Refresh is the only invalidation, typically driven by a cron job.
type TrendingCache struct {
	svc   *Service
	limit int

	mu      sync.Mutex
	entries []domain.TagCount
	loaded  bool
}

// NewTrendingCache builds a cache serving the top limit tags.
func NewTrendingCache(svc *Service, limit int) *TrendingCache {
	if limit <= 0 {
		limit = 8
	}
	return &TrendingCache{svc: svc, limit: limit}
}

// Get returns the cached batch, computing it on first use. Concurrent first
// calls may both compute; last write wins, which is harmless for a
// best-effort cache.
func (c *TrendingCache) Get(ctx context.Context) []domain.TagCount {
	c.mu.Lock()
	if c.loaded {
		entries := c.entries
		c.mu.Unlock()
		return entries
	}
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh recomputes the batch and stores it. An empty result (store outage)
// is cached too; the section renders empty rather than hammering the store.
func (c *TrendingCache) Refresh(ctx context.Context) []domain.TagCount {
	entries := c.svc.TagFrequency(ctx, c.limit)

	c.mu.Lock()
	c.entries = entries
	c.loaded = true
	c.mu.Unlock()
	return entries
}
