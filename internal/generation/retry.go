package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// Retry defaults, used when a policy carries invalid values.
const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = 2 * time.Second
)

// RetryPolicy configures retries of transient provider failures.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt
	MaxRetries int

	// BaseDelay is the delay before the first retry; it doubles on each attempt
	BaseDelay time.Duration
}

// Retry calls op until it succeeds, returns a non-transient error, or the
// policy is exhausted. Only errors wrapping ErrTransientFailure are retried.
//
// The delay before retry n (0-based) is BaseDelay * 2^n * (0.5 + rand[0, 0.5)).
func Retry[T any](
	ctx context.Context,
	logger *slog.Logger,
	policy RetryPolicy,
	op func(ctx context.Context) (T, error),
) (T, error) {
	var zero T

	maxRetries := policy.MaxRetries
	if maxRetries < 0 {
		logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", DefaultMaxRetries)
		maxRetries = DefaultMaxRetries
	}

	baseDelay := policy.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultRetryDelay
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				logger.InfoContext(ctx, "Model call succeeded after retry", "attempt", attempt+1)
			}
			return result, nil
		}

		if !errors.Is(err, ErrTransientFailure) {
			logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"attempt", attempt+1,
				"error", err)
			return zero, err
		}

		if attempt >= maxRetries {
			logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries,
				"error", err)
			return zero, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				ErrTransientFailure, maxRetries, err)
		}

		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

		logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds(),
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("%w: %w", ErrTransientFailure, ctx.Err())
		}
	}
}

// ClassifyStatus wraps err according to an HTTP status returned by a
// provider: rate limiting and server errors are transient, everything else is
// treated as an invalid request.
func ClassifyStatus(status int, err error) error {
	switch {
	case status == 429 || status == 408 || status >= 500:
		return fmt.Errorf("%w: status %d: %v", ErrTransientFailure, status, err)
	case status == 401 || status == 403:
		return fmt.Errorf("%w: status %d: %v", ErrInvalidConfig, status, err)
	default:
		return fmt.Errorf("%w: status %d: %v", ErrSummarizationFailed, status, err)
	}
}
