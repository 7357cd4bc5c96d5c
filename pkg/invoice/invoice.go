package invoice

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/hostable/credkit/pkg/digest"
)

const (
	// VerificationKeyLength is the length of the public-facing code printed
	// on every invoice.
	VerificationKeyLength = 8

	// keyAlphabet is lowercase alphanumeric: the key is read aloud and
	// re-typed by holders, so no case distinctions and no ambiguity with
	// uppercase lookalikes.
	keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// maxKeyAttempts bounds the uniqueness retry loop. Collisions are rare
	// but non-zero at 36^8 keyspace, so they are checked, not assumed away.
	maxKeyAttempts = 10
)

// Record is the persisted authenticity state of one invoice.
type Record struct {
	Number          string
	Amount          int64
	Email           string
	VerificationKey string
	PinHash         string
	Signature       string
}

// Stamp is the set of authenticity values derived at issuance and handed
// back for printing on the document.
type Stamp struct {
	VerificationKey string
	PinHash         string
	Signature       string
}

// VerifyRequest carries the caller-supplied values checked during
// verification. All five are required; none may be skipped.
type VerifyRequest struct {
	Number          string
	VerificationKey string
	Email           string
	PinHash         string
	Signature       string
}

// Storage is the persistence port for invoice authenticity records.
type Storage interface {
	GetInvoiceByNumber(ctx context.Context, number string) (*Record, error)
	VerificationKeyExists(ctx context.Context, key string) (bool, error)
}

// Service signs invoices at issuance and verifies holder-presented copies.
type Service struct {
	storage Storage
	secret  string
	logger  *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an invoice authenticity service. The signing secret must be
// distinct from the session signing key and never logged.
func New(storage Storage, secret string, opts ...Option) (*Service, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		storage: storage,
		secret:  secret,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign derives the authenticity stamp for an invoice at issuance time: a
// globally unique verification key, the owner's printed PIN hash (empty
// when no PIN is on file), and the HMAC signature binding the invoice
// fields together. The caller persists the stamp alongside the invoice.
func (s *Service) Sign(ctx context.Context, number string, amount int64, email, pin string) (Stamp, error) {
	key, err := s.uniqueVerificationKey(ctx)
	if err != nil {
		return Stamp{}, err
	}

	var pinHash string
	if pin != "" {
		pinHash = digest.ShortHash(pin)
	}

	stamp := Stamp{
		VerificationKey: key,
		PinHash:         pinHash,
		Signature:       s.signature(number, amount, email, key),
	}

	s.logger.InfoContext(ctx, "invoice stamped",
		slog.String("invoice", number),
		slog.String("verification_key", key),
		slog.String("component", "invoice"),
	)

	return stamp, nil
}

// Verify checks a holder-presented invoice against the persisted record.
// Checks run in a fixed order for clear error reporting, and every one is
// mandatory: the signature alone does not bind the document to the claimed
// holder without the email, key, and PIN checks supplying that context.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) error {
	rec, err := s.storage.GetInvoiceByNumber(ctx, req.Number)
	if errors.Is(err, ErrNotFound) || (err == nil && rec == nil) {
		return ErrNotFound
	}
	if err != nil {
		// A storage outage must not read as a verification verdict.
		return fmt.Errorf("failed to load invoice: %w", err)
	}

	if !strings.EqualFold(req.Email, rec.Email) {
		return ErrEmailMismatch
	}
	if !digest.EqualFold(req.VerificationKey, rec.VerificationKey) {
		return ErrKeyMismatch
	}
	// An invoice stamped without a PIN can never verify via this path.
	if rec.PinHash == "" || !digest.EqualFold(req.PinHash, rec.PinHash) {
		return ErrPinMismatch
	}

	// Recompute from the record's own persisted fields. The stored
	// signature is never ground truth: a tampered row fails here as long
	// as the secret is uncompromised.
	expected := s.signature(rec.Number, rec.Amount, rec.Email, rec.VerificationKey)
	if !digest.EqualFold(req.Signature, expected) {
		return ErrSignatureInvalid
	}

	return nil
}

// Signature recomputes the deterministic signature for an invoice's fields.
// Exposed so issuance flows can re-stamp reprints without re-signing state.
func (s *Service) Signature(number string, amount int64, email, verificationKey string) string {
	return s.signature(number, amount, email, verificationKey)
}

func (s *Service) signature(number string, amount int64, email, key string) string {
	msg := fmt.Sprintf("%s|%d|%s|%s", number, amount, strings.ToLower(email), key)
	return digest.Sign(msg, s.secret)
}

// uniqueVerificationKey draws random keys until one is unused. Uniqueness
// is rechecked against storage on every draw.
func (s *Service) uniqueVerificationKey(ctx context.Context) (string, error) {
	for range maxKeyAttempts {
		key, err := randomKey()
		if err != nil {
			return "", err
		}
		exists, err := s.storage.VerificationKeyExists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check verification key: %w", err)
		}
		if !exists {
			return key, nil
		}
	}
	return "", ErrKeySpaceExhausted
}

func randomKey() (string, error) {
	var b strings.Builder
	b.Grow(VerificationKeyLength)
	max := big.NewInt(int64(len(keyAlphabet)))
	for range VerificationKeyLength {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrKeyGeneration, err)
		}
		b.WriteByte(keyAlphabet[n.Int64()])
	}
	return b.String(), nil
}
