package twofactor

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/hostable/credkit/pkg/digest"
)

// DefaultTTL is how long an issued code stays verifiable. Brute-force
// resistance relies on this window plus request-rate limiting at the
// transport; the manager itself keeps no attempt counter.
const DefaultTTL = 10 * time.Minute

// codeDigits is the length of generated numeric codes.
const codeDigits = 6

// Challenge is the ephemeral per-identity OTP state: a one-way hash of
// the code and an absolute expiry. At most one valid challenge exists
// per identity; issuing a new one overwrites the old.
type Challenge struct {
	CodeHash  string
	ExpiresAt time.Time
}

// Storage persists the single challenge slot attached to each identity.
// Implementations must serialize concurrent writes to the same identity;
// last writer wins, since only the most recent challenge should verify.
type Storage interface {
	StoreChallenge(ctx context.Context, userID uuid.UUID, ch Challenge) error
	GetChallenge(ctx context.Context, userID uuid.UUID) (*Challenge, error)
	ClearChallenge(ctx context.Context, userID uuid.UUID) error
}

// Manager issues and verifies short-lived numeric OTP challenges.
type Manager struct {
	storage Storage
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithTTL overrides the default challenge lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets a custom logger for the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a challenge manager backed by the given storage.
func New(storage Storage, opts ...Option) (*Manager, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}

	m := &Manager{
		storage: storage,
		ttl:     DefaultTTL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue generates a fresh 6-digit code for the identity, persists its hash
// and expiry (overwriting any prior challenge), and returns the plaintext
// code exactly once for out-of-band delivery. The code is never logged.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	ch := Challenge{
		CodeHash:  digest.Hash(code),
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.storage.StoreChallenge(ctx, userID, ch); err != nil {
		return "", fmt.Errorf("failed to store challenge: %w", err)
	}

	m.logger.InfoContext(ctx, "otp challenge issued",
		slog.String("user_id", userID.String()),
		slog.Time("expires_at", ch.ExpiresAt),
		slog.String("component", "twofactor"),
	)

	return code, nil
}

// Resend issues a fresh code with a fresh expiry. The previous code stops
// verifying immediately; the caller restarts any client-visible countdown.
func (m *Manager) Resend(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.Issue(ctx, userID)
}

// Verify checks the supplied code against the identity's active challenge.
// An expired challenge is cleared as a side effect even though verification
// fails, so a stale code can never be retried into success. On success the
// challenge is cleared, making the code single-use.
func (m *Manager) Verify(ctx context.Context, userID uuid.UUID, code string) error {
	ch, err := m.storage.GetChallenge(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}
	if ch == nil || ch.CodeHash == "" {
		return ErrNoChallenge
	}

	// A code is valid strictly before its expiry instant.
	if !m.now().Before(ch.ExpiresAt) {
		if err := m.storage.ClearChallenge(ctx, userID); err != nil {
			m.logger.ErrorContext(ctx, "failed to clear expired challenge",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
				slog.String("component", "twofactor"),
			)
		}
		return ErrChallengeExpired
	}

	if !digest.Equal(digest.Hash(code), ch.CodeHash) {
		return ErrChallengeMismatch
	}

	if err := m.storage.ClearChallenge(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear challenge: %w", err)
	}
	return nil
}

// generateCode returns a uniformly random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCodeGeneration, err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
