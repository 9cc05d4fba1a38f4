package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProvider(t *testing.T) *jwtProvider {
	t.Helper()
	p := NewJWTProvider(JWTOptions{
		Secret:        "test-secret",
		SessionCookie: "cg_session",
		RefreshCookie: "cg_refresh",
		SessionTTL:    30 * time.Minute,
		RefreshTTL:    720 * time.Hour,
	}).(*jwtProvider)
	return p
}

func requestWith(patches []CookiePatch) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/app", nil)
	for _, p := range patches {
		r.AddCookie(&http.Cookie{Name: p.Name, Value: p.Value})
	}
	return r
}

func TestRefreshValidSession(t *testing.T) {
	p := testProvider(t)
	patches, err := p.Issue(Session{UserID: "u1", GlobalAdmin: true, Role: "staff"})
	require.NoError(t, err)

	sess, out, err := p.Refresh(context.Background(), requestWith(patches))
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.True(t, sess.GlobalAdmin)
	assert.Equal(t, "staff", sess.Role)
	// A valid session needs no cookie rewrite.
	assert.Empty(t, out)
}

func TestRefreshNoCookiesIsUnauthenticated(t *testing.T) {
	p := testProvider(t)
	sess, out, err := p.Refresh(context.Background(), requestWith(nil))
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, out)
}

func TestRefreshExpiredSessionReissues(t *testing.T) {
	p := testProvider(t)
	patches, err := p.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	// Move past the session TTL but inside the refresh TTL.
	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	sess, out, err := p.Refresh(context.Background(), requestWith(patches))
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	require.Len(t, out, 1)
	assert.Equal(t, "cg_session", out[0].Name)
	assert.NotEmpty(t, out[0].Value)
}

func TestRefreshExpiredRefreshToken(t *testing.T) {
	p := testProvider(t)
	patches, err := p.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }

	_, _, err = p.Refresh(context.Background(), requestWith(patches))
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshGarbageCookies(t *testing.T) {
	p := testProvider(t)
	r := httptest.NewRequest(http.MethodGet, "/app", nil)
	r.AddCookie(&http.Cookie{Name: "cg_session", Value: "not-a-jwt"})

	_, _, err := p.Refresh(context.Background(), r)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshTamperedRefreshToken(t *testing.T) {
	p := testProvider(t)
	other := NewJWTProvider(JWTOptions{
		Secret:        "other-secret",
		SessionCookie: "cg_session",
		RefreshCookie: "cg_refresh",
		SessionTTL:    30 * time.Minute,
		RefreshTTL:    720 * time.Hour,
	}).(*jwtProvider)
	patches, err := other.Issue(Session{UserID: "intruder"})
	require.NoError(t, err)

	_, _, err = p.Refresh(context.Background(), requestWith(patches))
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestGateClearsCookiesOnInvalidRefresh(t *testing.T) {
	p := testProvider(t)
	g := NewGate(p, zap.NewNop().Sugar())

	r := httptest.NewRequest(http.MethodGet, "/app", nil)
	r.AddCookie(&http.Cookie{Name: "cg_session", Value: "junk"})

	sess, patches := g.Run(r)
	assert.Nil(t, sess)
	require.Len(t, patches, 2)
	for _, patch := range patches {
		assert.Equal(t, -1, patch.MaxAge)
	}
}

func TestGatePassesValidSession(t *testing.T) {
	p := testProvider(t)
	g := NewGate(p, zap.NewNop().Sugar())

	patches, err := p.Issue(Session{UserID: "u1"})
	require.NoError(t, err)

	sess, out := g.Run(requestWith(patches))
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.Empty(t, out)
}
