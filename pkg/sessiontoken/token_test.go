package sessiontoken_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostable/credkit/pkg/sessiontoken"
)

const testKey = "test-signing-key-32-bytes-long!!"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty signing key", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New("")
		assert.ErrorIs(t, err, sessiontoken.ErrMissingSigningKey)
		assert.Nil(t, svc)
	})

	t.Run("applies default ttl", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)
		assert.Equal(t, sessiontoken.DefaultTTL, svc.TTL())
	})

	t.Run("applies custom ttl", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey, sessiontoken.WithTTL(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.TTL())
	})
}

func TestService_IssueVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves claims", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)

		userID := uuid.New()
		tok, err := svc.Issue(userID, "alice@example.com", "Alice", sessiontoken.RoleCustomer)
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		claims, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, sessiontoken.RoleCustomer, claims.Role)
		assert.Equal(t, claims.IssuedAt+int64(sessiontoken.DefaultTTL.Seconds()), claims.ExpiresAt)
	})

	t.Run("expires exactly after ttl", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := &fakeClock{now: now}

		svc, err := sessiontoken.New(testKey, sessiontoken.WithClock(clock.Now))
		require.NoError(t, err)

		tok, err := svc.Issue(uuid.New(), "a@b.com", "", sessiontoken.RoleCustomer)
		require.NoError(t, err)

		// Strictly before expiry: still valid.
		clock.now = now.Add(7*24*time.Hour - time.Second)
		_, err = svc.Verify(tok)
		assert.NoError(t, err)

		// The expiry instant itself: already dead, no grace period.
		clock.now = now.Add(7 * 24 * time.Hour)
		_, err = svc.Verify(tok)
		assert.ErrorIs(t, err, sessiontoken.ErrExpiredToken)
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)

		tok, err := svc.Issue(uuid.New(), "a@b.com", "", sessiontoken.RoleCustomer)
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx" + "." + parts[2]

		_, err = svc.Verify(tampered)
		assert.ErrorIs(t, err, sessiontoken.ErrInvalidSignature)
	})

	t.Run("rejects token signed with different key", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)
		other, err := sessiontoken.New("another-signing-key-32-bytes!!!!")
		require.NoError(t, err)

		tok, err := other.Issue(uuid.New(), "a@b.com", "", sessiontoken.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Verify(tok)
		assert.ErrorIs(t, err, sessiontoken.ErrInvalidSignature)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)

		for _, tok := range []string{"", "abc", "a.b", "a.b.c.d"} {
			_, err := svc.Verify(tok)
			assert.Error(t, err, "token %q", tok)
		}
	})

	t.Run("admin role survives the round trip", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)

		tok, err := svc.Issue(uuid.New(), "admin@example.com", "Ops", sessiontoken.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, sessiontoken.RoleAdmin, claims.Role)
	})
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }
