package sessions

import (
	"context"
	"errors"
	"net/http"
)

// ErrInvalidRefresh marks a corrupted or expired refresh token. The gate
// recovers from it by clearing session cookies; it never reaches a caller.
var ErrInvalidRefresh = errors.New("invalid refresh token")

type Provider interface {
	// Refresh returns the current session, transparently re-issuing the
	// session token from the refresh token when it has expired. A request
	// with no session cookies returns (nil, nil, nil); absence is not an
	// error.
	Refresh(ctx context.Context, r *http.Request) (*Session, []CookiePatch, error)
	// Clear returns the patches that delete this provider's cookies.
	Clear() []CookiePatch
}
