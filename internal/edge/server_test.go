package edge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clubgate/pkg/config"
)

func testApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("CLUB_SEED_JSON", `[{"ID":"00000000-0000-0000-0000-0000000000aa","Slug":"acme","Name":"Acme Chess Club","Hosts":["chess.acme.com"]}]`)
	cfg := config.Config{
		Env:            "test",
		RootDomains:    []string{"clubgate.app", "localhost"},
		WildcardSuffix: ".clubgate.app",
		TenantCacheTTL: time.Hour,
		SessionSecret:  "test-secret",
		SessionCookie:  "cg_session",
		RefreshCookie:  "cg_refresh",
		SessionTTL:     30 * time.Minute,
		RefreshTTL:     720 * time.Hour,
	}
	return New(zap.NewNop().Sugar(), cfg, nil, nil)
}

func do(t *testing.T, h http.Handler, host, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Host = host
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandlerTenantHostServesClubShell(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "acme.clubgate.app", "/events")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["club"])
	assert.Equal(t, "/t/acme/events", body["path"])
}

func TestHandlerAliasHostServesClubShell(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "chess.acme.com", "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body["club"])
}

func TestHandlerUnknownHostServesUnknownClubView(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "ghost.clubgate.app", "/anything")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unknown_club", body["error"])
}

func TestHandlerRootDomainPassesThrough(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "clubgate.app", "/pricing")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/pricing", body["path"])
}

func TestHandlerProtectedRedirectsToLogin(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "clubgate.app", "/admin/anything")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?return_to=%2Fadmin%2Fanything", w.Header().Get("Location"))
}

func TestHandlerHealthzBypassesPipelineOnAnyHost(t *testing.T) {
	h := testApp(t).Handler()

	w := do(t, h, "ghost.clubgate.app", "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestHandlerMetricsExposed(t *testing.T) {
	h := testApp(t).Handler()

	// Drive at least one directive through the pipeline so the counter has
	// a child to export.
	do(t, h, "clubgate.app", "/pricing")

	w := do(t, h, "clubgate.app", "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clubgate_directives_total")
}

func TestClubSlugHeaderAttached(t *testing.T) {
	app := testApp(t)
	var seen string
	mw := app.Pipeline().Middleware()
	inner := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(ClubSlugHeader)
		assert.Equal(t, "acme", ClubSlugFrom(r.Context()))
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Host = "acme.clubgate.app"
	inner.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "acme", seen)
}
