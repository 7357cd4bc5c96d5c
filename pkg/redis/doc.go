// Package redis establishes the redis client used by the rate limiter,
// with startup retry and a healthcheck adapter.
package redis
