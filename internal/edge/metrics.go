// internal/edge/metrics.go
package edge

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clubgate/pkg/tenants"
)

var (
	directivesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubgate_directives_total",
		Help: "Routing directives emitted by the edge pipeline.",
	}, []string{"action"})

	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubgate_club_resolutions_total",
		Help: "Host-to-club resolution outcomes.",
	}, []string{"outcome"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubgate_club_cache_lookups_total",
		Help: "Club cache lookups by result.",
	}, []string{"result"})
)

// instrumentedCache counts hits and misses around any tenants.Cache.
type instrumentedCache struct {
	inner tenants.Cache
}

// InstrumentCache wraps a club cache with prometheus counters.
func InstrumentCache(inner tenants.Cache) tenants.Cache {
	return &instrumentedCache{inner: inner}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) (tenants.Club, bool) {
	club, ok := c.inner.Get(ctx, key)
	if ok {
		cacheLookupsTotal.WithLabelValues("hit").Inc()
	} else {
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	}
	return club, ok
}

func (c *instrumentedCache) Set(ctx context.Context, key string, club tenants.Club, ttl time.Duration) {
	c.inner.Set(ctx, key, club, ttl)
}
