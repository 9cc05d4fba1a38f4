package edge

import (
	"context"

	"clubgate/pkg/sessions"
)

// Action is the terminal routing decision for one request.
type Action int

const (
	ActionContinue Action = iota
	ActionRewrite
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionRewrite:
		return "rewrite"
	case ActionRedirect:
		return "redirect"
	default:
		return "continue"
	}
}

// Directive is the pipeline's output: pass through, rewrite in place, or
// redirect. Cookie patches ride along regardless of action.
type Directive struct {
	Action   Action
	Path     string // rewrite target path
	ClubSlug string // request-scoped annotation for downstream consumers
	Location string // redirect target
	Status   int    // redirect status
	Cookies  []sessions.CookiePatch
}

type ctxClubSlugKey struct{}

// ClubSlugFrom returns the club slug annotation set by a tenant rewrite,
// or "" outside tenant scope.
func ClubSlugFrom(ctx context.Context) string {
	if v := ctx.Value(ctxClubSlugKey{}); v != nil {
		return v.(string)
	}
	return ""
}

func withClubSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, ctxClubSlugKey{}, slug)
}
