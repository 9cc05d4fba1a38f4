// pkg/tenants/resolver.go
package tenants

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"clubgate/pkg/hosts"
)

// Resolver identifies the club behind a request host. Lookup order is
// cache, custom-domain alias table, then the wildcard-subdomain heuristic
// against the platform suffix. Successful resolutions are written back to
// the cache under the original key (cache-aside; per-host keys, so two
// hosts of one club may each hold a snapshot).
type Resolver struct {
	provider Provider
	cache    Cache
	log      *zap.SugaredLogger

	wildcardSuffix string
	ttl            time.Duration
}

func NewResolver(provider Provider, cache Cache, log *zap.SugaredLogger, wildcardSuffix string, ttl time.Duration) *Resolver {
	if cache == nil {
		cache = NewNopCache()
	}
	return &Resolver{provider: provider, cache: cache, log: log, wildcardSuffix: wildcardSuffix, ttl: ttl}
}

// ResolveByHost resolves a raw host header to a club. Unknown hosts return
// ErrNotFound. Infrastructure failures in the provider are logged and also
// surface as ErrNotFound: the pipeline renders an unknown-club view rather
// than failing the request.
func (r *Resolver) ResolveByHost(ctx context.Context, rawHost string) (Club, error) {
	host := hosts.Normalize(rawHost)
	if host == "" {
		return Club{}, ErrNotFound
	}
	key := "host:" + host
	if c, ok := r.cache.Get(ctx, key); ok {
		return c, nil
	}

	c, err := r.provider.FindByAliasHost(ctx, host)
	switch {
	case err == nil:
		r.cache.Set(ctx, key, c, r.ttl)
		return c, nil
	case !errors.Is(err, ErrNotFound):
		r.log.Errorw("alias lookup", "host", host, "err", err)
		return Club{}, ErrNotFound
	}

	slug, ok := hosts.SubdomainLabel(host, r.wildcardSuffix)
	if !ok {
		return Club{}, ErrNotFound
	}
	c, err = r.ResolveBySlug(ctx, slug)
	if err != nil {
		return Club{}, err
	}
	r.cache.Set(ctx, key, c, r.ttl)
	return c, nil
}

// ResolveBySlug resolves a club by its canonical slug, cache-aside under a
// slug key.
func (r *Resolver) ResolveBySlug(ctx context.Context, slug string) (Club, error) {
	key := "slug:" + slug
	if c, ok := r.cache.Get(ctx, key); ok {
		return c, nil
	}
	c, err := r.provider.FindBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Errorw("slug lookup", "slug", slug, "err", err)
		}
		return Club{}, ErrNotFound
	}
	r.cache.Set(ctx, key, c, r.ttl)
	return c, nil
}
