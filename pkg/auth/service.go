package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostable/credkit/pkg/digest"
	"github.com/hostable/credkit/pkg/sessiontoken"
	"github.com/hostable/credkit/pkg/twofactor"
)

// Password length bounds enforced at registration and password change.
const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// Storage defines the persistence operations required by the auth service.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// LoginResult is the outcome of a credential check. When the account has
// 2FA enabled, Token stays empty, TwoFactorRequired is set, and OTPCode
// carries the freshly issued code for one-time out-of-band delivery — it
// must never appear in a response body or a log line.
type LoginResult struct {
	User              *User
	TwoFactorRequired bool
	OTPCode           string
	Token             string
}

// Service orchestrates the portal login flow: password check, optional OTP
// second factor, and session token issuance.
type Service struct {
	storage    Storage
	tokens     *sessiontoken.Service
	otp        *twofactor.Manager
	bcryptCost int
	logger     *slog.Logger
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

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// New creates the auth service from its collaborators.
func New(storage Storage, tokens *sessiontoken.Service, otp *twofactor.Manager, opts ...Option) (*Service, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if tokens == nil {
		return nil, ErrMissingTokens
	}
	if otp == nil {
		return nil, ErrMissingTwoFactor
	}

	s := &Service{
		storage:    storage,
		tokens:     tokens,
		otp:        otp,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a new customer account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidCredentials
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return nil, ErrWeakPassword
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := digest.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         RoleCustomer,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("component", "auth"),
	)
	return user, nil
}

// Authenticate verifies email and password. Accounts with 2FA enabled never
// receive a session token from this call: they get the intermediate
// two-factor signal plus a freshly issued OTP challenge instead. Every
// credential failure collapses to ErrInvalidCredentials so responses cannot
// be used for account enumeration.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" || !digest.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	if user.TwoFactorEnabled {
		code, err := s.otp.Issue(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to issue otp challenge: %w", err)
		}
		return &LoginResult{User: user, TwoFactorRequired: true, OTPCode: code}, nil
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// CompleteTwoFactor verifies the supplied OTP code for the account's active
// challenge and, on success, issues the session token that Authenticate
// withheld. The challenge is consumed either way it terminates.
func (s *Service) CompleteTwoFactor(ctx context.Context, email, code string) (*LoginResult, error) {
	user, err := s.storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	if err := s.otp.Verify(ctx, user.ID, code); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// ResendTwoFactor replaces the account's pending challenge with a fresh
// code and expiry, returning the new code for out-of-band delivery.
func (s *Service) ResendTwoFactor(ctx context.Context, email string) (string, error) {
	user, err := s.storage.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.TwoFactorEnabled {
		return "", ErrInvalidCredentials
	}
	return s.otp.Resend(ctx, user.ID)
}

// ChangePassword updates the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength || len(newPassword) > maxPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if !digest.VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := digest.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.storage.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// normalizeEmail lowercases and trims an address. Storage preserves the
// original casing; lookups always go through the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
