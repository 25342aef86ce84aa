package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces calls to the content oracle so a full batch of workers
// cannot trip the provider's rate limits.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond with the given burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until the next call is allowed or the context is cancelled
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks if a call is allowed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
