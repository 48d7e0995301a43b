package repository

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"gorm.io/gorm"
)

// ErrorMapper maps store and database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapStoreError maps a KV store error. Domain errors raised inside a watch
// pass through unchanged.
func (m *ErrorMapper) MapStoreError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrTxConflict):
		return fmt.Errorf("%w: %s", errs.ErrConcurrentModification, operation)
	case errors.Is(err, errs.ErrPersistence),
		errors.Is(err, errs.ErrTransactionNotFound),
		errors.Is(err, errs.ErrReservationNotFound),
		errors.Is(err, errs.ErrInvalidProductInfo):
		return err
	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrPersistence, operation, err.Error())
	}
}

// MapDatabaseError maps a gorm error, turning a missing row into notFound
func (m *ErrorMapper) MapDatabaseError(err error, operation string, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return fmt.Errorf("%w: %s: database unreachable", errs.ErrPersistence, operation)

	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", errs.ErrPersistence, operation)

	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrPersistence, operation, err.Error())
	}
}
