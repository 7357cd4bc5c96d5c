package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares window counters across instances. INCR plus a first-hit
// EXPIRE gives atomic fixed-window counting without scripting.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store using the given client. The prefix
// namespaces limiter keys; empty defaults to "ratelimit".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Incr(ctx context.Context, key string, cfg Config) (int, time.Time, error) {
	k := s.prefix + ":" + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreFailure, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, cfg.Window).Err(); err != nil {
			return 0, time.Time{}, errors.Join(ErrStoreFailure, err)
		}
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = cfg.Window
	}
	return int(count), time.Now().Add(ttl), nil
}
