// pkg/authz/postgres.go
package authz

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore answers ownership and membership questions against the clubs
// schema with existence-only queries.
type pgStore struct {
	dbPool *pgxpool.Pool
}

func NewPostgresStore(dbPool *pgxpool.Pool) Store {
	return &pgStore{dbPool: dbPool}
}

func (s *pgStore) IsOwner(ctx context.Context, clubID, userID string) (bool, error) {
	row := s.dbPool.QueryRow(ctx, `SELECT 1 FROM clubs WHERE id=$1 AND owner_id=$2 LIMIT 1`, clubID, userID)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *pgStore) MemberRole(ctx context.Context, clubID, userID string) (string, error) {
	row := s.dbPool.QueryRow(ctx, `SELECT role FROM club_members WHERE club_id=$1 AND user_id=$2 LIMIT 1`, clubID, userID)
	var role string
	if err := row.Scan(&role); err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return role, nil
}
