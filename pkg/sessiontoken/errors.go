package sessiontoken

import "errors"

var (
	ErrMissingSigningKey       = errors.New("sessiontoken: missing signing key")
	ErrInvalidToken            = errors.New("sessiontoken: invalid token")
	ErrExpiredToken            = errors.New("sessiontoken: token is expired")
	ErrInvalidSignature        = errors.New("sessiontoken: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("sessiontoken: unexpected signing method")
	ErrNoToken                 = errors.New("sessiontoken: no token present")
)
