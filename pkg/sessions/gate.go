// pkg/sessions/gate.go
package sessions

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Gate wraps a Provider so that no session failure escapes the routing
// layer. A corrupted refresh token degrades to "unauthenticated" plus
// cookie-clearing patches; any other provider error degrades to
// unauthenticated and is logged.
type Gate struct {
	provider Provider
	log      *zap.SugaredLogger
}

func NewGate(provider Provider, log *zap.SugaredLogger) *Gate {
	return &Gate{provider: provider, log: log}
}

// Run never returns an error. A nil session means the caller is
// unauthenticated; patches (if any) must be merged into the response.
func (g *Gate) Run(r *http.Request) (*Session, []CookiePatch) {
	sess, patches, err := g.provider.Refresh(r.Context(), r)
	if err == nil {
		return sess, patches
	}
	if errors.Is(err, ErrInvalidRefresh) {
		return nil, g.provider.Clear()
	}
	g.log.Warnw("session refresh", "err", err)
	return nil, nil
}
