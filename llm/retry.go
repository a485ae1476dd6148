package llm

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy configures exponential backoff with jitter.
type RetryPolicy struct {
	MaxRetries int           // retries after the initial attempt
	BaseDelay  time.Duration // delay before the first retry
	MaxDelay   time.Duration // cap on any single delay
	Multiplier float64       // backoff factor
	OnRetry    func(err error, attempt int, delay time.Duration)
}

// DefaultRetryPolicy returns the retry policy used by Client.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Second,
		MaxDelay:   time.Minute,
		Multiplier: 2.0,
	}
}

// delay calculates the backoff for attempt n (0-indexed), with +/- 50%
// jitter to avoid synchronized retries.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	d = math.Min(d, float64(p.MaxDelay))
	d = d * (0.5 + rand.Float64())
	return time.Duration(d)
}

// Retry runs fn, retrying retryable errors per the policy. The context
// aborts any pending backoff wait.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		if !IsRetryable(err) {
			return zero, err
		}

		delay := policy.delay(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(err, attempt+1, delay)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
	}

	return zero, err
}
