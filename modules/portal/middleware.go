package portal

import (
	"context"
	"net/http"
	"strings"

	"github.com/hostable/credkit/pkg/apikey"
	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/sessiontoken"
)

type contextKey string

const userContextKey contextKey = "portal.user"

// UserFromContext returns the authenticated user placed by the auth
// middleware, or nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userContextKey).(*auth.User)
	return u
}

func withUser(ctx context.Context, u *auth.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// Authenticator resolves requests to users via either the session cookie or
// an API key bearer header. Both paths re-read the user row so suspension
// takes effect immediately instead of waiting out the token's lifetime.
type Authenticator struct {
	tokens  *sessiontoken.Service
	cookies *sessiontoken.CookieTransport
	keys    *apikey.Manager
	users   auth.Storage
}

func NewAuthenticator(tokens *sessiontoken.Service, cookies *sessiontoken.CookieTransport, keys *apikey.Manager, users auth.Storage) *Authenticator {
	return &Authenticator{tokens: tokens, cookies: cookies, keys: keys, users: users}
}

// RequireUser admits requests carrying a valid session cookie or a valid
// API key. Everything else gets a generic 401.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolve(r)
		if err != nil {
			respondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// RequireRole layers a role check on top of RequireUser.
func (a *Authenticator) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := UserFromContext(r.Context()); user == nil || user.Role != role {
				respondError(w, apikey.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func (a *Authenticator) resolve(r *http.Request) (*auth.User, error) {
	if raw, ok := bearerToken(r); ok && strings.HasPrefix(raw, apikey.SecretPrefix) {
		return a.resolveAPIKey(r, raw)
	}
	return a.resolveSession(r)
}

func (a *Authenticator) resolveSession(r *http.Request) (*auth.User, error) {
	token, err := a.cookies.GetToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := a.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}
	if user.Suspended {
		return nil, auth.ErrAccountSuspended
	}
	return user, nil
}

func (a *Authenticator) resolveAPIKey(r *http.Request, rawSecret string) (*auth.User, error) {
	key, err := a.keys.Authenticate(r.Context(), rawSecret)
	if err != nil {
		return nil, apikey.ErrInvalidKey
	}
	user, err := a.users.GetUserByID(r.Context(), key.UserID)
	if err != nil {
		return nil, apikey.ErrInvalidKey
	}
	if user.Suspended {
		return nil, auth.ErrAccountSuspended
	}
	return user, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
