package invoice

import "errors"

var (
	ErrNotFound          = errors.New("invoice: invoice not found")
	ErrEmailMismatch     = errors.New("invoice: email does not match")
	ErrKeyMismatch       = errors.New("invoice: verification key does not match")
	ErrPinMismatch       = errors.New("invoice: pin hash does not match")
	ErrSignatureInvalid  = errors.New("invoice: signature is invalid")
	ErrKeyGeneration     = errors.New("invoice: failed to generate verification key")
	ErrKeySpaceExhausted = errors.New("invoice: could not find an unused verification key")
	ErrMissingStorage    = errors.New("invoice: storage is required")
	ErrMissingSecret     = errors.New("invoice: signing secret is required")
)
