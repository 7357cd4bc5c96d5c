package portal

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/ratelimit"
)

// RouterOptions carries the services mounted under the portal router.
type RouterOptions struct {
	Auth     *AuthService
	APIKeys  *APIKeyService
	Invoices *InvoiceService

	// Authn guards the protected subtree.
	Authn *Authenticator

	// AuthLimiter throttles the credential endpoints. Optional; when nil
	// the endpoints run unthrottled.
	AuthLimiter *ratelimit.Limiter

	// Healthchecks are probed by GET /healthz, keyed by dependency name.
	Healthchecks map[string]func(context.Context) error
}

// Router assembles the portal HTTP surface.
//
//	/auth/*           registration, login, OTP, logout (rate limited)
//	/invoices/verify  public document verification (rate limited)
//	/me, /me/password profile and password change (session or API key)
//	/apikeys/*        key management (session or API key)
//	/admin/invoices   invoice issuance (admin role)
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", healthz(opts.Healthchecks))

	// Credential endpoints and the public verification endpoint share the
	// limiter: both accept guesses from the open internet, and rate limiting
	// is the only brute-force defense beyond expiry.
	r.Group(func(pub chi.Router) {
		if opts.AuthLimiter != nil {
			pub.Use(ratelimit.Middleware(opts.AuthLimiter))
		}
		pub.Mount("/auth", opts.Auth.Handle())
		pub.Mount("/invoices", opts.Invoices.HandleVerify())
	})

	r.Group(func(priv chi.Router) {
		priv.Use(opts.Authn.RequireUser)
		priv.Get("/me", opts.Auth.Me)
		priv.Post("/me/password", opts.Auth.ChangePassword)
		priv.Mount("/apikeys", opts.APIKeys.Handle())
	})

	r.Group(func(admin chi.Router) {
		admin.Use(opts.Authn.RequireRole(auth.RoleAdmin))
		admin.Mount("/admin/invoices", opts.Invoices.HandleAdmin())
	})

	return r
}

func healthz(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "ok"
		}
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		respondJSON(w, code, status)
	}
}
