package ratelimiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces repeated operations such as cascade retries.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter allows up to limit operations per interval, bursting up to limit.
// It is safe for concurrent use.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter. A non-positive limit or interval disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit)}
}

// Wait blocks until the next operation is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
