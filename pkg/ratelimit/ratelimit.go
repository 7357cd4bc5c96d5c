package ratelimit

import (
	"context"
	"time"
)

// Config defines a fixed-window limit: at most Limit requests per Window
// for a given key.
type Config struct {
	Limit  int
	Window time.Duration
}

// Result describes the outcome of one limiter check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying, zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Store counts requests per key within the current window.
type Store interface {
	// Incr increments the counter for key in the window defined by cfg and
	// returns the count after the increment plus the window's reset time.
	Incr(ctx context.Context, key string, cfg Config) (count int, resetAt time.Time, err error)
}

// Limiter applies a fixed-window limit over a pluggable store. Brute-force
// protection for login and OTP endpoints lives here, outside the credential
// core, which assumes request-rate limiting is enforced at the transport.
type Limiter struct {
	store Store
	cfg   Config
}

// New creates a limiter. The config must carry a positive limit and window.
func New(store Store, cfg Config) (*Limiter, error) {
	if store == nil {
		return nil, ErrMissingStore
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return nil, ErrInvalidConfig
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

// Allow consumes one request slot for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - count,
		ResetAt:   resetAt,
	}, nil
}
