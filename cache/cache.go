// ABOUTME: In-memory TTL cache for workload summaries
// ABOUTME: Thread-safe via sync.Map with a background cleanup loop

package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/clusterops/migration-planner/models"
)

type entry struct {
	summary   models.WorkloadSummary
	expiresAt time.Time
}

// WorkloadCache caches workload summaries keyed by cluster identifier
type WorkloadCache struct {
	store sync.Map
	ttl   time.Duration
}

// New creates a cache with the given default TTL and starts its cleanup
// loop
func New(ttl time.Duration) *WorkloadCache {
	c := &WorkloadCache{
		ttl: ttl,
	}
	go c.startCleanup()
	return c
}

// Get returns a cached summary if present and unexpired
func (c *WorkloadCache) Get(clusterID string) (models.WorkloadSummary, bool) {
	val, ok := c.store.Load(clusterID)
	if !ok {
		slog.Debug("Workload cache miss", "cluster", clusterID)
		return models.WorkloadSummary{}, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(clusterID)
		slog.Debug("Workload cache expired", "cluster", clusterID)
		return models.WorkloadSummary{}, false
	}

	slog.Debug("Workload cache hit", "cluster", clusterID)
	return e.summary, true
}

// Set stores a summary with the default TTL
func (c *WorkloadCache) Set(clusterID string, summary models.WorkloadSummary) {
	c.store.Store(clusterID, entry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	})
	slog.Debug("Workload cache set", "cluster", clusterID, "ttl", c.ttl)
}

// Clear removes one cluster's cached summary
func (c *WorkloadCache) Clear(clusterID string) {
	c.store.Delete(clusterID)
}

func (c *WorkloadCache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.store.Range(func(key, val interface{}) bool {
			e := val.(entry)
			if now.After(e.expiresAt) {
				c.store.Delete(key)
			}
			return true
		})
	}
}
