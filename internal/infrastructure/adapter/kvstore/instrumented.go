package kvstore

import (
	"context"
	"errors"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
)

// DefaultSlowThreshold is the duration above which a store call is logged as slow
const DefaultSlowThreshold = 100 * time.Millisecond

// OperationMetrics holds measurements of a single store call
type OperationMetrics struct {
	Operation    string
	Key          string
	Duration     time.Duration
	Failed       bool
	Conflict     bool
	ErrorMessage string
}

// InstrumentedStore decorates a KVStore with slow-call and failure logging
type InstrumentedStore struct {
	next          persistence.KVStore
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration
}

// NewInstrumentedStore wraps next
func NewInstrumentedStore(
	next persistence.KVStore,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	slowThreshold time.Duration,
) *InstrumentedStore {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &InstrumentedStore{
		next:          next,
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: slowThreshold,
	}
}

// HGetAll implements persistence.KVStore
func (s *InstrumentedStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	var h map[string]string
	_, err := s.measure("hgetall", key, func() error {
		var err error
		h, err = s.next.HGetAll(ctx, key)
		return err
	})
	return h, err
}

// SMembers implements persistence.KVStore
func (s *InstrumentedStore) SMembers(ctx context.Context, key string) ([]string, error) {
	var m []string
	_, err := s.measure("smembers", key, func() error {
		var err error
		m, err = s.next.SMembers(ctx, key)
		return err
	})
	return m, err
}

// Watch implements persistence.KVStore; the whole optimistic transaction is measured as one call
func (s *InstrumentedStore) Watch(ctx context.Context, fn func(tx persistence.KVTx) error, keys ...string) error {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	_, err := s.measure("watch", key, func() error {
		return s.next.Watch(ctx, fn, keys...)
	})
	return err
}

// Ping implements persistence.KVStore
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close implements persistence.KVStore
func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}

func (s *InstrumentedStore) measure(operation, key string, fn func() error) (*OperationMetrics, error) {
	start := s.timeProvider.Now()

	err := fn()

	metrics := &OperationMetrics{
		Operation: operation,
		Key:       key,
		Duration:  s.timeProvider.Now().Sub(start),
		Failed:    err != nil,
		Conflict:  errors.Is(err, persistence.ErrTxConflict),
	}
	if err != nil {
		metrics.ErrorMessage = err.Error()
	}

	if metrics.Failed && !metrics.Conflict {
		s.logger.Warn("Store operation failed", map[string]any{
			"operation":   operation,
			"key":         key,
			"duration_ms": metrics.Duration.Milliseconds(),
			"error":       metrics.ErrorMessage,
		})
	}

	if metrics.Duration > s.slowThreshold {
		s.logger.Warn("Slow store operation detected", map[string]any{
			"operation":   operation,
			"key":         key,
			"duration_ms": metrics.Duration.Milliseconds(),
			"failed":      metrics.Failed,
		})
	}

	return metrics, err
}
