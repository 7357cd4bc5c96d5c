package apikey

import "errors"

var (
	ErrInvalidLabel     = errors.New("apikey: label must be between 3 and 50 characters")
	ErrQuotaExceeded    = errors.New("apikey: active key limit reached")
	ErrNotFound         = errors.New("apikey: key not found")
	ErrForbidden        = errors.New("apikey: key belongs to another account")
	ErrInvalidKey       = errors.New("apikey: invalid key")
	ErrKeyRevoked       = errors.New("apikey: key is revoked")
	ErrKeyExpired       = errors.New("apikey: key is expired")
	ErrSecretGeneration = errors.New("apikey: failed to generate secret")
	ErrMissingStorage   = errors.New("apikey: storage is required")
)
