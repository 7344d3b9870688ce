// Package retry provides a bounded exponential-backoff executor that
// retries only recoverable failures: rate limiting and transient server
// errors. Everything else re-raises immediately.
package retry

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Config defines retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry. The wait doubles after
	// each failed attempt: BaseDelay, 2*BaseDelay, 4*BaseDelay, ...
	// No jitter.
	BaseDelay time.Duration
}

// DefaultConfig matches the classification service's tolerances.
var DefaultConfig = Config{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
}

// recoverableMarkers are message substrings that indicate a transient
// failure worth retrying: rate limiting (429) or a server-side hiccup
// (500/503). Matching is on the lowered message, the same string-level
// classification the providers themselves force on us.
var recoverableMarkers = []string{
	"rate limit", "rate_limit", "429", "500", "503",
}

// IsRecoverable reports whether err is worth retrying.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range recoverableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Do executes op up to cfg.MaxAttempts times. A non-recoverable failure,
// or exhaustion of attempts, returns the last error immediately without a
// further delay. The wait before retry k is BaseDelay * 2^(k-1).
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRecoverable(err) || attempt == cfg.MaxAttempts {
			return zero, lastErr
		}

		slog.Info("recoverable failure, backing off",
			"attempt", attempt,
			"maxAttempts", cfg.MaxAttempts,
			"delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return zero, lastErr
}
