package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a fixed-window counter held in process memory. It is
// the fallback when no shared store is configured; counters are not
// shared across replicas. Safe for concurrent use.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	windowStart time.Time
	count       int
}

// NewMemoryLimiter creates an in-memory limiter allowing limit actions
// per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow implements port.RateLimiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.buckets[key]
	if b == nil || now.Sub(b.windowStart) >= l.window {
		l.evictExpired(now)
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}
	if b.count >= l.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

// evictExpired drops stale buckets so the map does not grow with dead
// keys. Called with the lock held, on window rollover only.
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, key)
		}
	}
}
