package reservation

import (
	"context"
	"math/rand"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
)

// RetryConfig bounds how often an aborted optimistic transaction is retried
type RetryConfig struct {
	MaxRetries    int // Total attempts, including the first
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Extra random share of the backoff (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: 50 * time.Millisecond,
		MaxInterval:   500 * time.Millisecond,
		JitterFactor:  0.2,
	}
}

// retryOnConflict runs operation until it succeeds, fails with anything other
// than ErrConcurrentModification, or the attempt budget is spent
func retryOnConflict(
	ctx context.Context,
	config RetryConfig,
	name string,
	operation func(attempt int) error,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) error {
	attempts := config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = operation(attempt)
		if err == nil || !errs.IsConcurrentModificationError(err) {
			return err
		}

		metrics.IncConflictRetry(name)
		if attempt == attempts {
			break
		}

		backoff := calculateBackoffWithJitter(attempt-1, config)
		logger.Warn("Optimistic transaction aborted, retrying", map[string]any{
			"operation":   name,
			"attempt":     attempt,
			"max_retries": attempts,
			"retry_after": backoff.String(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			logger.Warn("Retry canceled by context", map[string]any{
				"operation": name,
				"attempts":  attempt,
				"error":     ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"operation":   name,
		"max_retries": attempts,
		"error":       err.Error(),
	})
	return err
}

// calculateBackoffWithJitter computes baseInterval * 2^attempt, capped, plus jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))
	if config.MaxInterval > 0 && backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
	}
	return backoff
}
