package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	mcore "github.com/amirhossein-jamali/venue-reservation/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRetryOnConflict(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: time.Millisecond}

	newDeps := func(t *testing.T) (*mcore.MockLogger, *mcore.MockMetricsRecorder) {
		logger := mcore.NewMockLogger(t)
		logger.On("Warn", mock.Anything, mock.Anything).Maybe()
		logger.On("Error", mock.Anything, mock.Anything).Maybe()
		return logger, mcore.NewMockMetricsRecorder(t)
	}

	t.Run("does not retry other errors", func(t *testing.T) {
		logger, metrics := newDeps(t)
		calls := 0
		boom := errors.New("boom")

		err := retryOnConflict(context.Background(), cfg, "op", func(int) error {
			calls++
			return boom
		}, logger, metrics)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops once the operation succeeds", func(t *testing.T) {
		logger, metrics := newDeps(t)
		metrics.On("IncConflictRetry", "op").Once()
		var attempts []int

		err := retryOnConflict(context.Background(), cfg, "op", func(attempt int) error {
			attempts = append(attempts, attempt)
			if attempt == 1 {
				return errs.ErrConcurrentModification
			}
			return nil
		}, logger, metrics)

		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2}, attempts)
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		logger, metrics := newDeps(t)
		metrics.On("IncConflictRetry", "op").Once()
		ctx, cancel := context.WithCancel(context.Background())
		slow := RetryConfig{MaxRetries: 5, RetryInterval: time.Hour, MaxInterval: time.Hour}

		err := retryOnConflict(ctx, slow, "op", func(int) error {
			cancel()
			return errs.ErrConcurrentModification
		}, logger, metrics)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 40 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 20*time.Millisecond, calculateBackoffWithJitter(1, cfg))
	assert.Equal(t, 40*time.Millisecond, calculateBackoffWithJitter(5, cfg))

	cfg.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		d := calculateBackoffWithJitter(1, cfg)
		assert.GreaterOrEqual(t, d, 20*time.Millisecond)
		assert.LessOrEqual(t, d, 30*time.Millisecond)
	}
}
