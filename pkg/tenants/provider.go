package tenants

import (
	"context"
	"errors"
)

// ErrNotFound is the expected-miss result of every lookup in this package.
// Callers branch on it; it is never a failure of the routing layer.
var ErrNotFound = errors.New("club not found")

type Provider interface {
	// Exact match on the club's canonical slug.
	FindBySlug(ctx context.Context, slug string) (Club, error)
	// Exact match of a normalized host against the custom-domain alias table.
	// On hit the returned club carries the matched host as PrimaryHost.
	FindByAliasHost(ctx context.Context, host string) (Club, error)
}
