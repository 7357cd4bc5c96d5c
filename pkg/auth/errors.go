package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrWeakPassword       = errors.New("password does not meet length requirements")
	ErrMissingStorage     = errors.New("storage is required")
	ErrMissingTokens      = errors.New("session token service is required")
	ErrMissingTwoFactor   = errors.New("two-factor manager is required")
)
