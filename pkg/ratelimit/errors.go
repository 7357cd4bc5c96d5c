package ratelimit

import "errors"

var (
	ErrMissingStore  = errors.New("ratelimit: store is required")
	ErrInvalidConfig = errors.New("ratelimit: limit and window must be positive")
	ErrStoreFailure  = errors.New("ratelimit: store operation failed")
)
