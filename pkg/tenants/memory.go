// pkg/tenants/memory.go
package tenants

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

type memProvider struct {
	log    *zap.SugaredLogger
	bySlug map[string]Club
	byHost map[string]Club
}

// NewMemoryProviderFromEnv builds an in-memory provider seeded from
// CLUB_SEED_JSON, for running without a database.
func NewMemoryProviderFromEnv(log *zap.SugaredLogger) Provider {
	p := &memProvider{log: log, bySlug: map[string]Club{}, byHost: map[string]Club{}}
	seed := os.Getenv("CLUB_SEED_JSON")
	if seed != "" {
		var entries []struct {
			ID, Slug, Name, OwnerID string
			Hosts                   []string
		}
		_ = json.Unmarshal([]byte(seed), &entries)
		for _, e := range entries {
			c := Club{ID: e.ID, Slug: e.Slug, Name: e.Name}
			p.bySlug[e.Slug] = c
			for _, h := range e.Hosts {
				p.byHost[h] = c
			}
		}
	} else {
		dev := Club{ID: "00000000-0000-0000-0000-000000000001", Slug: "dev", Name: "Dev Club"}
		p.bySlug["dev"] = dev
		p.byHost["localhost"] = dev
	}
	return p
}

func (m *memProvider) FindBySlug(ctx context.Context, slug string) (Club, error) {
	if c, ok := m.bySlug[slug]; ok {
		return c, nil
	}
	return Club{}, ErrNotFound
}

func (m *memProvider) FindByAliasHost(ctx context.Context, host string) (Club, error) {
	if c, ok := m.byHost[host]; ok {
		c.PrimaryHost = host
		return c, nil
	}
	return Club{}, ErrNotFound
}
