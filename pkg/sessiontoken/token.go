package sessiontoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JWT header constants required by RFC 7519.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

// DefaultTTL is the session lifetime applied when no override is configured.
// Tokens are stateless and cannot be revoked before expiry, so the window is
// kept to a week.
const DefaultTTL = 7 * 24 * time.Hour

// Role claim values. RoleAdmin replaces the per-route admin token checks the
// portal used to duplicate: every route now verifies the same claim.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims is the self-contained identity assertion carried by a session token.
type Claims struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// Service issues and verifies signed session tokens using HMAC-SHA256.
// The signing key lives in memory only and must never be logged.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock injects the time source used for iat/exp. Expiry checks become
// deterministic in tests instead of racing the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service with the provided signing key.
// The key should be at least 32 bytes for HMAC-SHA256.
func New(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime, so transports can mirror it
// in cookie max-age.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token asserting the given identity claims.
// Expiry is iat + TTL; there is no grace period on the other end.
func (s *Service) Issue(userID uuid.UUID, email, name, role string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Name:      name,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Verify checks the token's signature, algorithm, and expiry, and returns
// the embedded claims. Any failure means the caller is anonymous.
func (s *Service) Verify(token string) (Claims, error) {
	var claims Claims

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return claims, ErrInvalidToken
	}

	// Signature first, before touching any decoded content.
	payload := parts[0] + "." + parts[1]
	expected := s.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return claims, ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return claims, ErrInvalidToken
	}
	var hdr header
	if err := json.Unmarshal(headerJSON, &hdr); err != nil {
		return claims, ErrInvalidToken
	}
	// Reject unexpected algorithms to prevent confusion attacks.
	if hdr.Algorithm != headerAlgorithm {
		return claims, ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return claims, ErrInvalidToken
	}
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return claims, ErrInvalidToken
	}

	// Valid strictly before exp; the expiry instant itself is expired.
	if claims.ExpiresAt > 0 && s.now().Unix() >= claims.ExpiresAt {
		return Claims{}, ErrExpiredToken
	}

	return claims, nil
}

// sign creates a base64url-encoded HMAC-SHA256 signature for the payload.
func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
