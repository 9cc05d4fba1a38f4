// pkg/tenants/postgres.go
package tenants

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pgProvider implements Provider backed by PostgreSQL.
type pgProvider struct {
	dbPool *pgxpool.Pool
	log    *zap.SugaredLogger
}

// NewPostgresProvider constructs a PostgreSQL-backed club provider.
func NewPostgresProvider(dbPool *pgxpool.Pool, log *zap.SugaredLogger) Provider {
	return &pgProvider{dbPool: dbPool, log: log}
}

// EnsureSchema creates required tables if they do not already exist.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS clubs (
  id uuid PRIMARY KEY,
  slug text UNIQUE NOT NULL,
  name text NOT NULL DEFAULT '',
  owner_id text NOT NULL DEFAULT '',
  created_at timestamptz NOT NULL DEFAULT NOW(),
  updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS club_domains (
  host text PRIMARY KEY,
  club_id uuid NOT NULL REFERENCES clubs(id) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS club_members (
  club_id uuid NOT NULL REFERENCES clubs(id) ON DELETE CASCADE,
  user_id text NOT NULL,
  role text NOT NULL DEFAULT 'member',
  PRIMARY KEY (club_id, user_id)
);
CREATE INDEX IF NOT EXISTS club_members_user_idx ON club_members(user_id);
`)
	return err
}

// SeedFromEnv ingests initial club data for dev bring-up.
// jsonSeed format (CLUB_SEED_JSON):
// [{"id":"...","slug":"acme","name":"Acme Chess Club","owner_id":"u1","hosts":["chess.acme.com"]}]
func SeedFromEnv(ctx context.Context, dbPool *pgxpool.Pool, jsonSeed string) error {
	if jsonSeed == "" {
		return nil
	}
	var entries []struct {
		ID, Slug, Name, OwnerID string
		Hosts                   []string
	}
	if err := json.Unmarshal([]byte(jsonSeed), &entries); err != nil {
		return err
	}
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, _ = dbPool.Exec(ctx, `INSERT INTO clubs(id,slug,name,owner_id) VALUES ($1,$2,$3,$4)
		  ON CONFLICT (id) DO UPDATE SET slug=EXCLUDED.slug,name=EXCLUDED.name,owner_id=EXCLUDED.owner_id`,
			id, e.Slug, e.Name, e.OwnerID)
		for _, h := range e.Hosts {
			_, _ = dbPool.Exec(ctx, `INSERT INTO club_domains(host,club_id) VALUES ($1,$2)
			  ON CONFLICT (host) DO UPDATE SET club_id=EXCLUDED.club_id`, h, id)
		}
		if e.OwnerID != "" {
			_, _ = dbPool.Exec(ctx, `INSERT INTO club_members(club_id,user_id,role) VALUES ($1,$2,'owner')
			  ON CONFLICT (club_id,user_id) DO UPDATE SET role='owner'`, id, e.OwnerID)
		}
	}
	return nil
}

// FindBySlug fetches a club by its canonical slug.
func (p *pgProvider) FindBySlug(ctx context.Context, slug string) (Club, error) {
	row := p.dbPool.QueryRow(ctx, `SELECT id,slug,name FROM clubs WHERE slug=$1`, slug)
	var c Club
	if err := row.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
		if err == pgx.ErrNoRows {
			return Club{}, ErrNotFound
		}
		return Club{}, err
	}
	return c, nil
}

// FindByAliasHost fetches a club via the custom-domain alias table.
func (p *pgProvider) FindByAliasHost(ctx context.Context, host string) (Club, error) {
	row := p.dbPool.QueryRow(ctx, `SELECT c.id,c.slug,c.name FROM club_domains d
	  JOIN clubs c ON c.id = d.club_id WHERE d.host=$1`, host)
	var c Club
	if err := row.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
		if err == pgx.ErrNoRows {
			return Club{}, ErrNotFound
		}
		return Club{}, err
	}
	c.PrimaryHost = host
	return c, nil
}
