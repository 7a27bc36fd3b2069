package domain

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Default geocoding retry settings.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// RetryPolicy is a bounded retry with a fixed delay between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// Retryable decides whether a failed attempt is tried again. A nil
	// predicate retries nothing.
	Retryable func(error) bool
	// Clock drives the delay. Nil uses the package clock.
	Clock clockwork.Clock
}

// DefaultRetryPolicy retries timeouts and service errors three times in
// total, two seconds apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultRetryDelay,
		Retryable:   IsRetryable,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or
// MaxAttempts calls have been made. onRetry, if set, runs before each delay.
// It returns the number of calls made and the last error.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error, onRetry func(attempt int, err error)) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx, attempt)
		if err == nil {
			return attempt, nil
		}
		if p.Retryable == nil || !p.Retryable(err) || attempt == maxAttempts {
			return attempt, err
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		if !p.wait(ctx) {
			return attempt, ctx.Err()
		}
	}
	return maxAttempts, err
}

func (p RetryPolicy) wait(ctx context.Context) bool {
	if p.Delay <= 0 {
		return ctx.Err() == nil
	}
	c := p.Clock
	if c == nil {
		c = clock
	}

	timer := c.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
