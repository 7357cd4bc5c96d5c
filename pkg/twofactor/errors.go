package twofactor

import "errors"

var (
	ErrNoChallenge       = errors.New("twofactor: no active challenge")
	ErrChallengeExpired  = errors.New("twofactor: challenge expired")
	ErrChallengeMismatch = errors.New("twofactor: code mismatch")
	ErrCodeGeneration    = errors.New("twofactor: failed to generate code")
	ErrMissingStorage    = errors.New("twofactor: storage is required")
)
