// pkg/sessions/jwt.go
package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// jwtProvider issues and validates HMAC-signed session and refresh tokens
// carried in two cookies. The refresh token duplicates the identity claims
// so a session can be re-minted without a store round trip.
type jwtProvider struct {
	secret        []byte
	sessionCookie string
	refreshCookie string
	sessionTTL    time.Duration
	refreshTTL    time.Duration
	secure        bool
	now           func() time.Time
}

type JWTOptions struct {
	Secret        string
	SessionCookie string
	RefreshCookie string
	SessionTTL    time.Duration
	RefreshTTL    time.Duration
	Secure        bool
}

func NewJWTProvider(opts JWTOptions) Provider {
	return &jwtProvider{
		secret:        []byte(opts.Secret),
		sessionCookie: opts.SessionCookie,
		refreshCookie: opts.RefreshCookie,
		sessionTTL:    opts.SessionTTL,
		refreshTTL:    opts.RefreshTTL,
		secure:        opts.Secure,
		now:           time.Now,
	}
}

func (p *jwtProvider) Refresh(ctx context.Context, r *http.Request) (*Session, []CookiePatch, error) {
	sessRaw := cookieValue(r, p.sessionCookie)
	refreshRaw := cookieValue(r, p.refreshCookie)
	if sessRaw == "" && refreshRaw == "" {
		return nil, nil, nil
	}

	if sessRaw != "" {
		sess, err := p.parse(sessRaw)
		if err == nil {
			return sess, nil, nil
		}
		if !errors.Is(err, jwt.ErrTokenExpired()) && refreshRaw == "" {
			// Garbage session cookie and nothing to refresh from.
			return nil, nil, ErrInvalidRefresh
		}
	}

	if refreshRaw == "" {
		return nil, nil, ErrInvalidRefresh
	}
	sess, err := p.parse(refreshRaw)
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}

	fresh, err := p.mint(sess, p.sessionTTL)
	if err != nil {
		return nil, nil, ErrInvalidRefresh
	}
	patch := CookiePatch{
		Name:     p.sessionCookie,
		Value:    fresh,
		MaxAge:   int(p.sessionTTL / time.Second),
		HTTPOnly: true,
		Secure:   p.secure,
	}
	return sess, []CookiePatch{patch}, nil
}

func (p *jwtProvider) Clear() []CookiePatch {
	return []CookiePatch{
		{Name: p.sessionCookie, MaxAge: -1, HTTPOnly: true, Secure: p.secure},
		{Name: p.refreshCookie, MaxAge: -1, HTTPOnly: true, Secure: p.secure},
	}
}

// Issue mints the cookie pair for a signed-in user. Used by the sign-in
// stub and by tests; the real sign-in flow lives outside the edge.
func (p *jwtProvider) Issue(sess Session) ([]CookiePatch, error) {
	st, err := p.mint(&sess, p.sessionTTL)
	if err != nil {
		return nil, err
	}
	rt, err := p.mint(&sess, p.refreshTTL)
	if err != nil {
		return nil, err
	}
	return []CookiePatch{
		{Name: p.sessionCookie, Value: st, MaxAge: int(p.sessionTTL / time.Second), HTTPOnly: true, Secure: p.secure},
		{Name: p.refreshCookie, Value: rt, MaxAge: int(p.refreshTTL / time.Second), HTTPOnly: true, Secure: p.secure},
	}, nil
}

func (p *jwtProvider) mint(sess *Session, ttl time.Duration) (string, error) {
	now := p.now()
	b := jwt.NewBuilder().
		Subject(sess.UserID).
		IssuedAt(now).
		Expiration(now.Add(ttl))
	if sess.GlobalAdmin {
		b = b.Claim("adm", true)
	}
	if sess.Role != "" {
		b = b.Claim("role", sess.Role)
	}
	tok, err := b.Build()
	if err != nil {
		return "", err
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, p.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

func (p *jwtProvider) parse(raw string) (*Session, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, p.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(p.now)),
	)
	if err != nil {
		return nil, err
	}
	sess := &Session{UserID: tok.Subject()}
	if v, ok := tok.Get("adm"); ok {
		sess.GlobalAdmin, _ = v.(bool)
	}
	if v, ok := tok.Get("role"); ok {
		sess.Role, _ = v.(string)
	}
	return sess, nil
}

func cookieValue(r *http.Request, name string) string {
	if name == "" {
		return ""
	}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
