package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// APIError is a classified provider failure.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Retryable  bool
	Cause      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s (status=%d, retryable=%v)", e.Provider, e.Message, e.StatusCode, e.Retryable)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is safe to retry. Context
// cancellation is never retried; unclassified errors are, on the
// assumption they are transient transport failures.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var api *APIError
	if errors.As(err, &api) {
		return api.Retryable
	}
	return true
}

// classifyError maps a gollm error onto an APIError by sniffing the
// message text, since gollm does not expose structured status codes.
func classifyError(provider string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	lower := strings.ToLower(msg)

	wrap := func(status int, retryable bool) error {
		return &APIError{
			Provider:   provider,
			StatusCode: status,
			Message:    msg,
			Retryable:  retryable,
			Cause:      err,
		}
	}

	switch {
	case strings.Contains(lower, "401"), strings.Contains(lower, "unauthorized"),
		strings.Contains(lower, "invalid api key"):
		return wrap(401, false)
	case strings.Contains(lower, "403"), strings.Contains(lower, "forbidden"):
		return wrap(403, false)
	case strings.Contains(lower, "404"), strings.Contains(lower, "not found"):
		return wrap(404, false)
	case strings.Contains(lower, "context length"), strings.Contains(lower, "too many tokens"):
		return wrap(413, false)
	case strings.Contains(lower, "429"), strings.Contains(lower, "rate limit"):
		return wrap(429, true)
	case strings.Contains(lower, "500"), strings.Contains(lower, "internal server"),
		strings.Contains(lower, "overloaded"):
		return wrap(500, true)
	case strings.Contains(lower, "timeout"):
		return wrap(408, true)
	default:
		return wrap(0, true)
	}
}
