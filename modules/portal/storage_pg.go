package portal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostable/credkit/pkg/apikey"
	"github.com/hostable/credkit/pkg/auth"
	"github.com/hostable/credkit/pkg/invoice"
	"github.com/hostable/credkit/pkg/pg"
	"github.com/hostable/credkit/pkg/twofactor"
)

// PgStorage implements every storage port of the credential services over
// a single pgx pool. The OTP challenge occupies two columns on the users
// row, so overwriting a challenge and serializing concurrent writers both
// come for free from row-level semantics.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage wraps an existing pool. The pool is constructed once at
// process start and injected; this type holds no other state.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// --- auth.Storage ---

const userColumns = `id, email, name, role, password_hash, two_factor_enabled, pin, suspended, created_at`

func (s *PgStorage) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, password_hash, two_factor_enabled, pin, suspended, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.Name, u.Role, u.PasswordHash, u.TwoFactorEnabled, u.PIN, u.Suspended, u.CreatedAt,
	)
	if pg.IsUniqueViolation(err) {
		return auth.ErrEmailAlreadyExists
	}
	return err
}

func (s *PgStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PgStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (s *PgStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PgStorage) scanUser(row rowScanner) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash,
		&u.TwoFactorEnabled, &u.PIN, &u.Suspended, &u.CreatedAt)
	if pg.IsNotFound(err) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- twofactor.Storage ---

func (s *PgStorage) StoreChallenge(ctx context.Context, userID uuid.UUID, ch twofactor.Challenge) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET otp_hash = $2, otp_expires_at = $3 WHERE id = $1`,
		userID, ch.CodeHash, ch.ExpiresAt,
	)
	return err
}

func (s *PgStorage) GetChallenge(ctx context.Context, userID uuid.UUID) (*twofactor.Challenge, error) {
	var hash *string
	var expiresAt *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT otp_hash, otp_expires_at FROM users WHERE id = $1`, userID,
	).Scan(&hash, &expiresAt)
	if pg.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if hash == nil || expiresAt == nil {
		return nil, nil
	}
	return &twofactor.Challenge{CodeHash: *hash, ExpiresAt: *expiresAt}, nil
}

func (s *PgStorage) ClearChallenge(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET otp_hash = NULL, otp_expires_at = NULL WHERE id = $1`, userID)
	return err
}

// --- apikey.Storage ---

const keyColumns = `id, user_id, label, key_hash, key_prefix, active, expires_at, last_used, created_at`

func (s *PgStorage) CreateKey(ctx context.Context, k *apikey.Key) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO api_keys (id, user_id, label, key_hash, key_prefix, active, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		k.ID, k.UserID, k.Label, k.Hash, k.Prefix, k.Active, k.ExpiresAt, k.CreatedAt,
	)
	return err
}

func (s *PgStorage) GetKeyByID(ctx context.Context, id uuid.UUID) (*apikey.Key, error) {
	return s.scanKey(s.pool.QueryRow(ctx,
		`SELECT `+keyColumns+` FROM api_keys WHERE id = $1`, id))
}

func (s *PgStorage) GetKeyByHash(ctx context.Context, hash string) (*apikey.Key, error) {
	// key_hash carries a unique index: authentication is a point lookup.
	return s.scanKey(s.pool.QueryRow(ctx,
		`SELECT `+keyColumns+` FROM api_keys WHERE key_hash = $1`, hash))
}

func (s *PgStorage) ListKeysByUser(ctx context.Context, userID uuid.UUID) ([]apikey.Key, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+keyColumns+` FROM api_keys WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []apikey.Key
	for rows.Next() {
		var k apikey.Key
		if err := rows.Scan(&k.ID, &k.UserID, &k.Label, &k.Hash, &k.Prefix,
			&k.Active, &k.ExpiresAt, &k.LastUsed, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *PgStorage) CountActiveKeys(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM api_keys WHERE user_id = $1 AND active`, userID,
	).Scan(&count)
	return count, err
}

func (s *PgStorage) SetKeyActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := s.pool.Exec(ctx, `UPDATE api_keys SET active = $2 WHERE id = $1`, id, active)
	return err
}

func (s *PgStorage) TouchKey(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `UPDATE api_keys SET last_used = $2 WHERE id = $1`, id, usedAt)
	return err
}

func (s *PgStorage) scanKey(row rowScanner) (*apikey.Key, error) {
	var k apikey.Key
	err := row.Scan(&k.ID, &k.UserID, &k.Label, &k.Hash, &k.Prefix,
		&k.Active, &k.ExpiresAt, &k.LastUsed, &k.CreatedAt)
	if pg.IsNotFound(err) {
		return nil, apikey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// --- invoice.Storage ---

func (s *PgStorage) GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Record, error) {
	var rec invoice.Record
	err := s.pool.QueryRow(ctx,
		`SELECT number, amount, email, verification_key, coalesce(pin_hash, ''), signature
		 FROM invoices WHERE number = $1`, number,
	).Scan(&rec.Number, &rec.Amount, &rec.Email, &rec.VerificationKey, &rec.PinHash, &rec.Signature)
	if pg.IsNotFound(err) {
		return nil, invoice.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PgStorage) VerificationKeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE verification_key = $1)`, key,
	).Scan(&exists)
	return exists, err
}

// CreateInvoice persists an invoice together with its authenticity stamp.
// A nil ownerID records an invoice billed to an address without an account.
func (s *PgStorage) CreateInvoice(ctx context.Context, ownerID *uuid.UUID, rec invoice.Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO invoices (number, user_id, amount, email, verification_key, pin_hash, signature, created_at)
		 VALUES ($1, $2, $3, $4, $5, nullif($6, ''), $7, now())`,
		rec.Number, ownerID, rec.Amount, rec.Email, rec.VerificationKey, rec.PinHash, rec.Signature,
	)
	return err
}
