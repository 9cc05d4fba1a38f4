// internal/edge/app.go
package edge

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clubgate/pkg/authz"
	"clubgate/pkg/config"
	"clubgate/pkg/routes"
	"clubgate/pkg/sessions"
	"clubgate/pkg/tenants"
)

// App is the edge application container: shared deps and the assembled
// pipeline. Request-scoped state lives on contexts, never here.
type App struct {
	log      *zap.SugaredLogger
	cfg      config.Config
	pipeline *Pipeline
}

// New wires the resolver, gate and authorization engine and performs
// one-time startup tasks (schema, seed).
func New(log *zap.SugaredLogger, cfg config.Config, pool *pgxpool.Pool, cache tenants.Cache) *App {
	var provider tenants.Provider
	var store authz.Store
	if pool != nil {
		provider = tenants.NewPostgresProvider(pool, log)
		store = authz.NewPostgresStore(pool)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := tenants.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("schema", "err", err)
		}
		if err := tenants.SeedFromEnv(ctx, pool, os.Getenv("CLUB_SEED_JSON")); err != nil {
			log.Warnw("seed", "err", err)
		}
	} else {
		provider = tenants.NewMemoryProviderFromEnv(log)
	}

	if cache == nil {
		cache = tenants.NewNopCache()
	}
	resolver := tenants.NewResolver(provider, InstrumentCache(cache), log, cfg.WildcardSuffix, cfg.TenantCacheTTL)

	table, err := routes.LoadTable(cfg.RoutesFile)
	if err != nil {
		log.Warnw("route table load, using defaults", "file", cfg.RoutesFile, "err", err)
	}
	classifier := routes.NewClassifier(table)

	gate := sessions.NewGate(sessions.NewJWTProvider(sessions.JWTOptions{
		Secret:        cfg.SessionSecret,
		SessionCookie: cfg.SessionCookie,
		RefreshCookie: cfg.RefreshCookie,
		SessionTTL:    cfg.SessionTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Secure:        cfg.Env == "prod",
	}), log)

	engine := authz.NewEngine(store, log)

	return &App{
		log:      log,
		cfg:      cfg,
		pipeline: NewPipeline(resolver, classifier, gate, engine, log, cfg.RootDomains),
	}
}

// Pipeline exposes the assembled pipeline for embedding in other servers.
func (a *App) Pipeline() *Pipeline { return a.pipeline }
