package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/hostable/credkit/pkg/clientip"
)

// Middleware limits requests per client IP. Keys combine the route pattern
// with the remote address so one abusive endpoint cannot exhaust another's
// budget. On limiter store failure the request is allowed through: losing
// rate limiting briefly is preferable to taking logins down with redis.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Path + "|" + clientip.FromRequest(r)

			result, err := l.Allow(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			if result.Remaining > 0 {
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			} else {
				w.Header().Set("X-RateLimit-Remaining", "0")
			}

			if !result.Allowed() {
				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
