// Package retry provides a bounded retry policy for transient failures.
package retry

import (
	"context"
	"time"
)

// Policy controls retry behavior: the number of additional attempts after
// the first failure, the initial delay, and the multiplier applied to the
// delay before each subsequent attempt. No jitter is applied.
type Policy struct {
	Attempts   int
	Delay      time.Duration
	Multiplier float64
}

// DefaultPolicy returns the standard store retry policy: two additional
// attempts with a widening delay sequence of 1s, 1.5s.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   2,
		Delay:      time.Second,
		Multiplier: 1.5,
	}
}

// Backoff returns the delay before retry n (zero-indexed): Delay for the
// first retry, scaled by Multiplier for each retry after that.
func (p Policy) Backoff(n int) time.Duration {
	d := p.Delay
	for i := 0; i < n; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
	}
	return d
}

// Do executes fn, retrying up to p.Attempts additional times when transient
// reports the returned error as retryable. Non-retryable errors fail
// immediately. The delay before each retry follows p.Backoff; a cancelled
// context cuts the wait short and returns the last error.
func Do[T any](ctx context.Context, p Policy, transient func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	for n := 0; n < p.Attempts; n++ {
		if !transient(err) {
			return zero, err
		}

		select {
		case <-time.After(p.Backoff(n)):
		case <-ctx.Done():
			return zero, err
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
	}

	return zero, err
}
