// Package retry runs a call under a bounded attempt policy with exponential
// backoff. The zero Policy makes exactly one attempt.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Policy struct {
	Attempts  int           // total attempts, values below 1 mean 1
	BaseDelay time.Duration // wait before the second attempt, doubled after each failure
}

// Do calls fn until it succeeds, the policy is exhausted or ctx is done.
// Context errors are never retried.
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(p.delay(i)):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		lastErr = err
	}

	if attempts == 1 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// delay returns BaseDelay * 2^(attempt-1).
func (p Policy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}
