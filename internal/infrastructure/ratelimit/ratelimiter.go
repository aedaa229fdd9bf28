package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps requests per sliding window. A zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

// Enabled reports whether any window has a limit
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerMinute > 0 || c.RequestsPerHour > 0 || c.RequestsPerDay > 0
}

// Result describes the outcome of a single Allow call. RetryAfter is the
// length of the window that rejected the request.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (Result, error)
	GetUsage(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
