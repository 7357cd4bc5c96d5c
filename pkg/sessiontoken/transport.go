package sessiontoken

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie under which the session token travels.
const DefaultCookieName = "session"

// CookieTransport carries session tokens in an httpOnly, sameSite=lax cookie
// whose max-age mirrors the token's own expiry. The Secure flag is enabled
// in production deployments only, where TLS is guaranteed.
type CookieTransport struct {
	name   string
	path   string
	secure bool
}

// NewCookieTransport creates a cookie transport. An empty name falls back
// to DefaultCookieName.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieTransport{name: name, path: "/", secure: secure}
}

// SetToken writes the token cookie with max-age matching ttl.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     t.path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetToken extracts the session token from the request cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

// ClearToken expires the cookie client-side. The token itself stays valid
// until exp elapses; there is no server-side revocation list.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     t.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
