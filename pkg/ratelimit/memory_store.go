package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	count   int
	resetAt time.Time
}

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Counters for elapsed windows are replaced lazily on next use.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]windowCounter
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]windowCounter),
		now:      time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, cfg Config) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.counters[key]
	if !ok || now.After(c.resetAt) {
		c = windowCounter{count: 0, resetAt: now.Add(cfg.Window)}
	}
	c.count++
	s.counters[key] = c
	return c.count, c.resetAt, nil
}
