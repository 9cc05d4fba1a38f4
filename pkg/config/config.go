// pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// Host routing
	RootDomains    []string // exact-match allowlist for the platform's own hosts
	WildcardSuffix string   // e.g. ".clubgate.app"; leftmost label is a candidate slug

	// Tenant cache
	TenantCacheTTL time.Duration

	// Sessions
	SessionSecret string
	SessionCookie string
	RefreshCookie string
	SessionTTL    time.Duration
	RefreshTTL    time.Duration

	// Route table override (YAML, optional)
	RoutesFile string

	// Redis & Postgres
	RedisURL    string
	DatabaseURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:            env("CLUBGATE_ENV", "dev"),
		HTTPAddr:       env("CLUBGATE_HTTP_ADDR", ":8080"),
		RootDomains:    envList("ROOT_DOMAINS", "clubgate.app,www.clubgate.app,localhost"),
		WildcardSuffix: env("WILDCARD_SUFFIX", ".clubgate.app"),
		TenantCacheTTL: envDur("TENANT_CACHE_TTL_HOURS", 6) * time.Hour,
		SessionSecret:  env("SESSION_SIGNING_SECRET", ""),
		SessionCookie:  env("SESSION_COOKIE", "cg_session"),
		RefreshCookie:  env("REFRESH_COOKIE", "cg_refresh"),
		SessionTTL:     envDur("SESSION_TTL_MIN", 30) * time.Minute,
		RefreshTTL:     envDur("REFRESH_TTL_HOURS", 720) * time.Hour,
		RoutesFile:     env("ROUTES_FILE", ""),
		RedisURL:       env("REDIS_URL", ""),
		DatabaseURL:    env("DATABASE_URL", ""),
	}
	if cfg.DatabaseURL == "" {
		log.Println("[WARN] DATABASE_URL not set — using in-memory club provider for dev")
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envList(k, def string) []string {
	v := os.Getenv(k)
	if v == "" {
		v = def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
