package ratelimit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLimiter is a fixed-window counter shared across replicas
// through the rate_limits table. The upsert makes concurrent increments
// from multiple processes converge on one row per (key, window).
type PostgresLimiter struct {
	pool   *pgxpool.Pool
	limit  int
	window time.Duration
}

// NewPostgresLimiter creates a store-backed limiter allowing limit
// actions per window.
func NewPostgresLimiter(pool *pgxpool.Pool, limit int, window time.Duration) *PostgresLimiter {
	return &PostgresLimiter{pool: pool, limit: limit, window: window}
}

// Allow implements port.RateLimiter.
func (l *PostgresLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().UTC().Truncate(l.window)

	var count int
	err := l.pool.QueryRow(ctx,
		`INSERT INTO rate_limits (key, window_start, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (key, window_start) DO UPDATE SET count = rate_limits.count + 1
		 RETURNING count`,
		key, windowStart).Scan(&count)
	if err != nil {
		return false, err
	}

	if count == 1 {
		// First hit of a fresh window: piggyback cleanup of dead windows.
		_, _ = l.pool.Exec(ctx,
			`DELETE FROM rate_limits WHERE window_start < $1`, windowStart.Add(-l.window))
	}
	return count <= l.limit, nil
}
