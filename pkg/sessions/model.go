package sessions

import "net/http"

// Session is the claims bag decoded once at the gate boundary. Downstream
// code never inspects raw tokens.
type Session struct {
	UserID      string
	GlobalAdmin bool
	Role        string // explicit platform role claim, may be empty
}

// CookiePatch is a Set-Cookie mutation to merge into the outgoing response.
// MaxAge < 0 deletes the cookie.
type CookiePatch struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int
	HTTPOnly bool
	Secure   bool
}

// Apply writes the patch onto a response.
func (p CookiePatch) Apply(w http.ResponseWriter) {
	path := p.Path
	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    p.Value,
		Path:     path,
		MaxAge:   p.MaxAge,
		HttpOnly: p.HTTPOnly,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
