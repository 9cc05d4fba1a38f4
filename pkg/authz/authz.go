// pkg/authz/authz.go
package authz

import (
	"context"

	"go.uber.org/zap"

	"clubgate/pkg/sessions"
)

// Decision is the outcome of an admin-route authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Store answers the two existence questions tiers 2 and 3 need. Both are
// top-1 lookups, never full row fetches.
type Store interface {
	IsOwner(ctx context.Context, clubID, userID string) (bool, error)
	MemberRole(ctx context.Context, clubID, userID string) (string, error) // "" when no membership
}

// Engine decides admin access by three-tier precedence: global-admin claim,
// club ownership, then an owner/admin membership role. Tiers are evaluated
// cheapest first and short-circuit on the first match; tier 1 needs no I/O.
type Engine struct {
	store Store
	log   *zap.SugaredLogger
}

func NewEngine(store Store, log *zap.SugaredLogger) *Engine {
	return &Engine{store: store, log: log}
}

// Authorize returns Allow when any tier grants access. An empty clubID
// limits the check to the session-local tier. Store errors fail the tier
// that hit them; remaining tiers still run.
func (e *Engine) Authorize(ctx context.Context, sess *sessions.Session, clubID string) Decision {
	if sess == nil {
		return Deny
	}
	if sess.GlobalAdmin {
		return Allow
	}
	if clubID == "" || e.store == nil {
		return Deny
	}

	owner, err := e.store.IsOwner(ctx, clubID, sess.UserID)
	if err != nil {
		e.log.Warnw("ownership lookup", "club", clubID, "user", sess.UserID, "err", err)
	} else if owner {
		return Allow
	}

	role, err := e.store.MemberRole(ctx, clubID, sess.UserID)
	if err != nil {
		e.log.Warnw("membership lookup", "club", clubID, "user", sess.UserID, "err", err)
		return Deny
	}
	if role == "owner" || role == "admin" {
		return Allow
	}
	return Deny
}
