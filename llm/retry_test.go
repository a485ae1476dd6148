package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2.0,
	}
}

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("got %q after %d calls", got, calls)
	}
}

func TestRetryRecoversFromTransientError(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &APIError{StatusCode: 500, Message: "transient", Retryable: true}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	fatal := &APIError{StatusCode: 401, Message: "bad key", Retryable: false}
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (int, error) {
		calls++
		return 0, fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want the original failure", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastPolicy(), func(ctx context.Context) (int, error) {
		calls++
		return 0, &APIError{StatusCode: 429, Retryable: true}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// Initial attempt plus MaxRetries.
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := fastPolicy()
	policy.BaseDelay = time.Hour // force the wait branch

	done := make(chan error, 1)
	go func() {
		_, err := Retry(ctx, policy, func(ctx context.Context) (int, error) {
			return 0, &APIError{Retryable: true}
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Retry did not return after cancellation")
	}
}

func TestRetryInvokesOnRetryHook(t *testing.T) {
	var attempts []int
	policy := fastPolicy()
	policy.OnRetry = func(err error, attempt int, delay time.Duration) {
		attempts = append(attempts, attempt)
	}

	_, _ = Retry(context.Background(), policy, func(ctx context.Context) (int, error) {
		return 0, &APIError{Retryable: true}
	})

	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
	}
}
