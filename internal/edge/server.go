// internal/edge/server.go
package edge

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clubgate/pkg/middleware"
	"clubgate/pkg/problems"
)

// Handler builds the HTTP handler: edge middleware chain plus the rewrite
// targets the pipeline emits. The real club pages and app shell are served
// by the application behind this layer; the handlers here are the edge's
// own views (unknown club) and minimal stand-ins for downstream targets.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recover(a.log))
	r.Use(middleware.Tracing())
	r.Use(a.pipeline.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get(UnknownClubPath, a.unknownClub)
	r.HandleFunc(ClubScopePrefix+"/{slug}/*", a.clubShell)
	r.HandleFunc(ClubScopePrefix+"/{slug}", a.clubShell)

	// Downstream app-shell targets. Page-level logic is out of the edge's
	// scope; these answer enough for the routing layer to be exercised end
	// to end.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"path": r.URL.Path})
	})

	return r
}

func (a *App) unknownClub(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"type":   problems.Type("unknown-club"),
		"title":  "Unknown club",
		"error":  "unknown_club",
		"detail": "this domain is not linked to any club",
	})
}

func (a *App) clubShell(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"club": ClubSlugFrom(r.Context()),
		"path": r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
