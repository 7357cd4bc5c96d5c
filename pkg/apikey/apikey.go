package apikey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hostable/credkit/pkg/digest"
)

const (
	// SecretPrefix marks raw secrets so they are recognizable in configs
	// and never mistaken for session tokens.
	SecretPrefix = "ck_"

	// secretBytes is the raw entropy per key: 32 bytes, 256 bits.
	secretBytes = 32

	// DisplayPrefixLength is how many leading characters of the raw secret
	// survive as the unmasked display prefix.
	DisplayPrefixLength = 8

	// MaxActiveKeys is the per-account quota of active keys.
	MaxActiveKeys = 20

	// Label length bounds.
	MinLabelLength = 3
	MaxLabelLength = 50
)

// Key is the persisted API key record. The raw secret is never stored;
// only its SHA-256 hash and the display prefix survive creation.
type Key struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Label     string
	Hash      string `json:"-"`
	Prefix    string
	Active    bool
	ExpiresAt *time.Time
	LastUsed  *time.Time
	CreatedAt time.Time
}

// Storage persists API key records. GetByHash must be backed by an index
// on the hash column so authentication is a point lookup, never a scan.
type Storage interface {
	CreateKey(ctx context.Context, key *Key) error
	GetKeyByID(ctx context.Context, id uuid.UUID) (*Key, error)
	GetKeyByHash(ctx context.Context, hash string) (*Key, error)
	ListKeysByUser(ctx context.Context, userID uuid.UUID) ([]Key, error)
	CountActiveKeys(ctx context.Context, userID uuid.UUID) (int, error)
	SetKeyActive(ctx context.Context, id uuid.UUID, active bool) error
	TouchKey(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}

// Manager issues, lists, revokes, and authenticates opaque bearer keys.
type Manager struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithLogger sets a custom logger for the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects the time source used for timestamps and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates an API key manager backed by the given storage.
func New(storage Storage, opts ...Option) (*Manager, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}

	m := &Manager{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create mints a new key for the account. The raw secret is returned exactly
// once; afterwards only the hash and display prefix are recoverable, so the
// caller must persist the secret themselves.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, label string) (*Key, string, error) {
	if len(label) < MinLabelLength || len(label) > MaxLabelLength {
		return nil, "", ErrInvalidLabel
	}

	count, err := m.storage.CountActiveKeys(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to count active keys: %w", err)
	}
	if count >= MaxActiveKeys {
		return nil, "", ErrQuotaExceeded
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, "", err
	}

	key := &Key{
		ID:        uuid.New(),
		UserID:    userID,
		Label:     label,
		Hash:      digest.Hash(secret),
		Prefix:    secret[:DisplayPrefixLength],
		Active:    true,
		CreatedAt: m.now(),
	}
	if err := m.storage.CreateKey(ctx, key); err != nil {
		return nil, "", fmt.Errorf("failed to create key: %w", err)
	}

	m.logger.InfoContext(ctx, "api key created",
		slog.String("key_id", key.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("prefix", key.Prefix),
		slog.String("component", "apikey"),
	)

	return key, secret, nil
}

// List returns the account's keys with the hash blanked. Raw secrets are
// unrecoverable by construction.
func (m *Manager) List(ctx context.Context, userID uuid.UUID) ([]Key, error) {
	keys, err := m.storage.ListKeysByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	for i := range keys {
		keys[i].Hash = ""
	}
	return keys, nil
}

// Revoke soft-deletes a key by flipping active=false, preserving the record
// for audit. Fails ErrForbidden if the key belongs to another account.
func (m *Manager) Revoke(ctx context.Context, userID, keyID uuid.UUID) error {
	key, err := m.storage.GetKeyByID(ctx, keyID)
	if errors.Is(err, ErrNotFound) || (err == nil && key == nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load key: %w", err)
	}
	if key.UserID != userID {
		return ErrForbidden
	}

	if err := m.storage.SetKeyActive(ctx, keyID, false); err != nil {
		return fmt.Errorf("failed to revoke key: %w", err)
	}

	m.logger.InfoContext(ctx, "api key revoked",
		slog.String("key_id", keyID.String()),
		slog.String("user_id", userID.String()),
		slog.String("component", "apikey"),
	)
	return nil
}

// Authenticate resolves a presented raw secret to its key record: hash the
// secret, point-lookup by hash, then check the active flag and expiry.
// Every failure collapses to ErrInvalidKey at the surface; the precise
// reason stays internal to avoid leaking key state to callers.
func (m *Manager) Authenticate(ctx context.Context, rawSecret string) (*Key, error) {
	if rawSecret == "" {
		return nil, ErrInvalidKey
	}

	key, err := m.storage.GetKeyByHash(ctx, digest.Hash(rawSecret))
	if err != nil || key == nil {
		return nil, ErrInvalidKey
	}
	if !key.Active {
		return nil, errors.Join(ErrInvalidKey, ErrKeyRevoked)
	}
	now := m.now()
	if key.ExpiresAt != nil && now.After(*key.ExpiresAt) {
		return nil, errors.Join(ErrInvalidKey, ErrKeyExpired)
	}

	if err := m.storage.TouchKey(ctx, key.ID, now); err != nil {
		m.logger.ErrorContext(ctx, "failed to update key last-used",
			slog.String("key_id", key.ID.String()),
			slog.Any("error", err),
			slog.String("component", "apikey"),
		)
	}

	return key, nil
}

// generateSecret returns a prefixed base64url-encoded 256-bit random secret.
func generateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSecretGeneration, err)
	}
	return SecretPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}
