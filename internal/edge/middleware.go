// internal/edge/middleware.go
package edge

import (
	"net/http"
)

// ClubSlugHeader carries the resolved slug to downstream handlers that
// read headers instead of context.
const ClubSlugHeader = "X-Club-Slug"

// Middleware applies the pipeline's directive to the request: rewrites
// mutate the path and annotate the context, redirects terminate here, and
// cookie patches are merged into the response either way.
func (p *Pipeline) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health and metrics are reachable on any host, unrouted.
			switch r.URL.Path {
			case "/healthz", "/metrics":
				next.ServeHTTP(w, r)
				return
			}
			d := p.Decide(r)
			for _, patch := range d.Cookies {
				patch.Apply(w)
			}
			switch d.Action {
			case ActionRedirect:
				http.Redirect(w, r, d.Location, d.Status)
			case ActionRewrite:
				r.URL.Path = d.Path
				r.URL.RawPath = ""
				if d.ClubSlug != "" {
					r.Header.Set(ClubSlugHeader, d.ClubSlug)
					r = r.WithContext(withClubSlug(r.Context(), d.ClubSlug))
				}
				next.ServeHTTP(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
