// pkg/tenants/cache.go
package tenants

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is the optional club snapshot cache. It is a pure optimization:
// implementations must collapse every transport failure to a miss, never an
// error, so resolution stays correct when the store is down.
type Cache interface {
	Get(ctx context.Context, key string) (Club, bool)
	Set(ctx context.Context, key string, c Club, ttl time.Duration)
}

type redisCache struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

// NewRedisCache wraps a redis client as a fail-open club cache.
func NewRedisCache(client *redis.Client, log *zap.SugaredLogger) Cache {
	return &redisCache{client: client, log: log}
}

func (r *redisCache) Get(ctx context.Context, key string) (Club, bool) {
	b, err := r.client.Get(ctx, "club:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warnw("club cache get", "key", key, "err", err)
		}
		return Club{}, false
	}
	var c Club
	if err := json.Unmarshal(b, &c); err != nil {
		r.log.Warnw("club cache decode", "key", key, "err", err)
		return Club{}, false
	}
	return c, true
}

func (r *redisCache) Set(ctx context.Context, key string, c Club, ttl time.Duration) {
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, "club:"+key, b, ttl).Err(); err != nil {
		r.log.Warnw("club cache set", "key", key, "err", err)
	}
}

type nopCache struct{}

// NewNopCache returns a cache that never hits, for running without redis.
func NewNopCache() Cache { return nopCache{} }

func (nopCache) Get(ctx context.Context, key string) (Club, bool)           { return Club{}, false }
func (nopCache) Set(ctx context.Context, key string, c Club, ttl time.Duration) {}
