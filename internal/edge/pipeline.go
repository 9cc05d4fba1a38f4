// internal/edge/pipeline.go
package edge

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"clubgate/pkg/authz"
	"clubgate/pkg/hosts"
	"clubgate/pkg/routes"
	"clubgate/pkg/sessions"
	"clubgate/pkg/tenants"
)

const (
	// UnknownClubPath is a rewrite target, never a redirect: redirecting a
	// misconfigured custom domain would loop.
	UnknownClubPath = "/unknown-club"
	// ClubScopePrefix is the namespace tenant requests are rewritten under.
	ClubScopePrefix = "/t"
)

// Pipeline turns one inbound request into a routing directive. It owns no
// mutable state; every invocation is independent.
type Pipeline struct {
	resolver   *tenants.Resolver
	classifier *routes.Classifier
	gate       *sessions.Gate
	engine     *authz.Engine
	log        *zap.SugaredLogger

	rootDomains map[string]struct{}
	loginPath   string
	homePath    string
}

func NewPipeline(resolver *tenants.Resolver, classifier *routes.Classifier, gate *sessions.Gate, engine *authz.Engine, log *zap.SugaredLogger, rootDomains []string) *Pipeline {
	roots := make(map[string]struct{}, len(rootDomains))
	for _, d := range rootDomains {
		roots[hosts.Normalize(d)] = struct{}{}
	}
	return &Pipeline{
		resolver:    resolver,
		classifier:  classifier,
		gate:        gate,
		engine:      engine,
		log:         log,
		rootDomains: roots,
		loginPath:   "/auth/login",
		homePath:    "/app",
	}
}

// Decide runs the state machine once. Root-domain hosts go through the auth
// sub-pipeline; any other host is resolved to a club and rewritten under
// the club namespace, or to the unknown-club view when resolution misses.
func (p *Pipeline) Decide(r *http.Request) Directive {
	host := hosts.Normalize(r.Host)
	if _, ok := p.rootDomains[host]; ok {
		d := p.authPipeline(r)
		directivesTotal.WithLabelValues(d.Action.String()).Inc()
		return d
	}

	club, err := p.resolver.ResolveByHost(r.Context(), host)
	if err != nil {
		resolutionsTotal.WithLabelValues("unknown").Inc()
		d := Directive{Action: ActionRewrite, Path: UnknownClubPath}
		directivesTotal.WithLabelValues(d.Action.String()).Inc()
		return d
	}
	resolutionsTotal.WithLabelValues("resolved").Inc()
	d := Directive{
		Action:   ActionRewrite,
		Path:     ClubScopePrefix + "/" + club.Slug + r.URL.Path,
		ClubSlug: club.Slug,
	}
	directivesTotal.WithLabelValues(d.Action.String()).Inc()
	return d
}

// authPipeline gates the default app shell. Any panic here converts to a
// plain pass-through: worst case one request skips an authorization check
// and the page-level checks downstream are the backstop. See DESIGN.md
// before changing this to fail-closed.
func (p *Pipeline) authPipeline(r *http.Request) (d Directive) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Errorw("auth pipeline recovered", "path", r.URL.Path, "err", rec)
			d = Directive{Action: ActionContinue}
		}
	}()

	path := r.URL.Path
	class := p.classifier.Classify(path)
	sess, patches := p.gate.Run(r)

	switch {
	case class >= routes.Protected && sess == nil:
		loc := p.loginPath + "?return_to=" + url.QueryEscape(path)
		return Directive{Action: ActionRedirect, Location: loc, Status: http.StatusFound, Cookies: patches}

	case class == routes.Auth && sess != nil && !p.classifier.IsSignOut(path):
		return Directive{Action: ActionRedirect, Location: p.homePath, Status: http.StatusFound, Cookies: patches}

	case class == routes.Admin:
		if p.engine.Authorize(r.Context(), sess, clubIDFromAdminPath(path)) == authz.Deny {
			return Directive{Action: ActionRedirect, Location: p.homePath, Status: http.StatusFound, Cookies: patches}
		}
		return Directive{Action: ActionContinue, Cookies: patches}
	}
	return Directive{Action: ActionContinue, Cookies: patches}
}

// clubIDFromAdminPath extracts the target club from admin paths of the form
// /admin/clubs/{id}/... Platform-wide admin pages carry no club id, so only
// the global-admin tier can grant them.
func clubIDFromAdminPath(path string) string {
	const prefix = "/admin/clubs/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
