package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrGeocoderTimeout))
	assert.True(t, IsRetryable(fmt.Errorf("nominatim: %w", ErrGeocoderService)))
	assert.False(t, IsRetryable(errors.New("decode response: EOF")))
	assert.False(t, IsRetryable(nil))
}

func TestRetryPolicy_SucceedsFirstTry(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Retryable: IsRetryable}
	calls := 0

	attempts, err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_StopsAtMaxAttempts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Retryable: IsRetryable}
	var seen []int
	var retried []int

	attempts, err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		seen = append(seen, attempt)
		return ErrGeocoderTimeout
	}, func(attempt int, _ error) {
		retried = append(retried, attempt)
	})

	require.ErrorIs(t, err, ErrGeocoderTimeout)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, []int{1, 2}, retried, "no retry notice after the last attempt")
}

func TestRetryPolicy_NonRetryableStopsImmediately(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Retryable: IsRetryable}
	calls := 0
	boom := errors.New("boom")

	attempts, err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		return boom
	}, nil)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_RecoversOnSecondAttempt(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Retryable: IsRetryable}

	attempts, err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		if attempt == 1 {
			return ErrGeocoderService
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryPolicy_WaitsFixedDelay(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Retryable: IsRetryable, Clock: fc}
	start := fc.Now()

	var callTimes []time.Time
	done := make(chan error, 1)
	go func() {
		_, err := p.Do(context.Background(), func(context.Context, int) error {
			callTimes = append(callTimes, fc.Now())
			return ErrGeocoderTimeout
		}, nil)
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for range 2 {
		require.NoError(t, fc.BlockUntilContext(ctx, 1))
		fc.Advance(2 * time.Second)
	}

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrGeocoderTimeout)
	case <-ctx.Done():
		t.Fatal("retry loop did not finish")
	}
	assert.Equal(t, []time.Time{start, start.Add(2 * time.Second), start.Add(4 * time.Second)}, callTimes)
}

func TestRetryPolicy_ContextCancelledDuringDelay(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second, Retryable: IsRetryable, Clock: fc}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := p.Do(ctx, func(context.Context, int) error {
			calls++
			return ErrGeocoderTimeout
		}, nil)
		done <- err
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, fc.BlockUntilContext(waitCtx, 1))
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.Delay)
	assert.True(t, p.Retryable(ErrGeocoderTimeout))
}

func TestRetryPolicy_NilClockUsesPackageClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	SetClock(fc)
	t.Cleanup(func() { SetClock(nil) })

	p := RetryPolicy{MaxAttempts: 2, Delay: time.Second, Retryable: IsRetryable}
	done := make(chan int, 1)
	go func() {
		attempts, _ := p.Do(context.Background(), func(context.Context, int) error {
			return ErrGeocoderService
		}, nil)
		done <- attempts
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(time.Second)

	assert.Equal(t, 2, <-done)
}
