package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires store", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil, Config{Limit: 5, Window: time.Minute})
		assert.ErrorIs(t, err, ErrMissingStore)
	})

	t.Run("rejects non-positive config", func(t *testing.T) {
		t.Parallel()

		_, err := New(NewMemoryStore(), Config{Limit: 0, Window: time.Minute})
		assert.ErrorIs(t, err, ErrInvalidConfig)
		_, err = New(NewMemoryStore(), Config{Limit: 5, Window: 0})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("allows up to the limit then denies", func(t *testing.T) {
		t.Parallel()

		l, err := New(NewMemoryStore(), Config{Limit: 3, Window: time.Minute})
		require.NoError(t, err)

		ctx := context.Background()
		for i := range 3 {
			result, err := l.Allow(ctx, "key")
			require.NoError(t, err)
			assert.True(t, result.Allowed(), "request %d", i)
		}

		result, err := l.Allow(ctx, "key")
		require.NoError(t, err)
		assert.False(t, result.Allowed())
		assert.Positive(t, result.RetryAfter())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		l, err := New(NewMemoryStore(), Config{Limit: 1, Window: time.Minute})
		require.NoError(t, err)

		ctx := context.Background()
		first, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, first.Allowed())

		second, err := l.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, second.Allowed())
	})

	t.Run("window reset restores the budget", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		l, err := New(store, Config{Limit: 1, Window: time.Minute})
		require.NoError(t, err)

		ctx := context.Background()
		_, err = l.Allow(ctx, "key")
		require.NoError(t, err)
		denied, err := l.Allow(ctx, "key")
		require.NoError(t, err)
		assert.False(t, denied.Allowed())

		now = now.Add(2 * time.Minute)
		allowed, err := l.Allow(ctx, "key")
		require.NoError(t, err)
		assert.True(t, allowed.Allowed())
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	l, err := New(NewMemoryStore(), Config{Limit: 2, Window: time.Minute})
	require.NoError(t, err)

	handler := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}
