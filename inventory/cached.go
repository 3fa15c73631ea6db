// ABOUTME: Caching decorator for workload providers
// ABOUTME: TTL cache plus singleflight to collapse concurrent lookups

package inventory

import (
	"context"
	"time"

	"github.com/clusterops/migration-planner/cache"
	"github.com/clusterops/migration-planner/models"
	"github.com/clusterops/migration-planner/services"
	"golang.org/x/sync/singleflight"
)

// CachedProvider wraps another provider with a TTL cache. Concurrent
// lookups for the same cluster are collapsed into a single upstream call.
type CachedProvider struct {
	upstream services.WorkloadProvider
	cache    *cache.WorkloadCache
	sfGroup  singleflight.Group
}

// NewCachedProvider wraps upstream with a cache of the given TTL
func NewCachedProvider(upstream services.WorkloadProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		cache:    cache.New(ttl),
	}
}

// GetWorkloadSummary returns the cached summary when fresh, otherwise
// fetches from the upstream provider (deduplicated across callers)
func (p *CachedProvider) GetWorkloadSummary(ctx context.Context, clusterID string) (models.WorkloadSummary, error) {
	if summary, ok := p.cache.Get(clusterID); ok {
		return summary, nil
	}

	val, err, _ := p.sfGroup.Do(clusterID, func() (interface{}, error) {
		summary, err := p.upstream.GetWorkloadSummary(ctx, clusterID)
		if err != nil {
			return nil, err
		}
		p.cache.Set(clusterID, summary)
		return summary, nil
	})
	if err != nil {
		return models.WorkloadSummary{}, err
	}

	return val.(models.WorkloadSummary), nil
}

// Invalidate drops one cluster's cached summary, forcing the next lookup
// to hit the upstream provider
func (p *CachedProvider) Invalidate(clusterID string) {
	p.cache.Clear(clusterID)
}
