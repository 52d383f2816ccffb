package pipeline

import (
	"context"
	"time"

	"github.com/paperpress/paperpress"
)

// RetryFunc is a single retryable operation.
type RetryFunc func(ctx context.Context) error

// DefaultRetryDelays returns the backoff delays for retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return Backoff(3, 1*time.Second, 2)
}

// Backoff builds a delay schedule of attempts entries starting at initial
// and growing by multiplier each step.
func Backoff(attempts int, initial time.Duration, multiplier float64) []time.Duration {
	delays := make([]time.Duration, 0, attempts)
	d := initial
	for i := 0; i < attempts; i++ {
		delays = append(delays, d)
		d = time.Duration(float64(d) * multiplier)
	}
	return delays
}

// RetryWithDelays runs fn, retrying after each failure until the delay
// schedule is exhausted (len(delays)+1 total attempts). It returns the
// last error, or the context error if canceled while waiting. Validation
// failures are not retried; they cannot succeed on a second attempt.
func RetryWithDelays(ctx context.Context, fn RetryFunc, delays []time.Duration) error {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) || attempt >= len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return lastErr
}

// retryable reports whether a failed operation is worth repeating.
// Validation, quality and compiler failures are deterministic.
func retryable(err error) bool {
	switch paperpress.ErrorCode(err) {
	case paperpress.EINVALID, paperpress.EQUALITY, paperpress.ERENDER:
		return false
	}
	return true
}
