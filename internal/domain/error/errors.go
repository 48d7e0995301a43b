package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeInvalidUserID       = 4001
	CodeInvalidProductInfo  = 4002
	CodePaymentFailed       = 4020
	CodeForbidden           = 4030
	CodeNotFound            = 4040
	CodeVenueNotFound       = 4041
	CodeReservationNotFound = 4042
	CodeTransactionNotFound = 4043

	// 5xxx - Server errors
	CodeInternalServer         = 5000
	CodeConcurrentModification = 5001
	CodePersistence            = 5002
)

// Base error types
var (
	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidUserID is returned when the user ID is missing
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidProductInfo is returned when the product info is missing or malformed
	ErrInvalidProductInfo = errors.New("invalid product info")

	// ErrInvalidTimeSlot is returned when a time slot is not in HH:MM-HH:MM form
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInvalidDate is returned when a date parameter is not in yyyyMMdd form
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrVenueNotFound is returned when the venue ID cannot be resolved
	ErrVenueNotFound = errors.New("venue not found")

	// ErrReservationNotFound is returned when the requested reservation doesn't exist
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTransactionNotFound is returned when the ledger entry doesn't exist or has expired
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrForbidden is returned when the caller does not own the reservation
	ErrForbidden = errors.New("operation not permitted for this user")

	// ErrPayment is returned when the payment gateway rejects a reserve or confirm call
	ErrPayment = errors.New("payment gateway error")

	// ErrConcurrentModification is returned when an optimistic transaction keeps aborting
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrPersistence is returned when the store is unreachable or a batch fails for non-concurrency reasons
	ErrPersistence = errors.New("persistence error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidProductInfo),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrInvalidDate):
		return CodeInvalidProductInfo
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrPayment):
		return CodePaymentFailed
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrVenueNotFound):
		return CodeVenueNotFound
	case errors.Is(err, ErrReservationNotFound):
		return CodeReservationNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConcurrentModification):
		return CodeConcurrentModification
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the status code surfaced at the HTTP boundary.
// An expired or replayed transaction is a client-side condition, not a missing page.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err),
		errors.Is(err, ErrPayment),
		errors.Is(err, ErrTransactionNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PaymentError describes a failed call to the payment gateway
type PaymentError struct {
	Operation     string
	TransactionID string
	ReturnCode    string
	Err           error
}

// Error implements the error interface for PaymentError
func (e *PaymentError) Error() string {
	if e.ReturnCode != "" {
		return fmt.Sprintf("payment %s failed for transaction %s (code %s): %v",
			e.Operation, e.TransactionID, e.ReturnCode, e.Err)
	}
	return fmt.Sprintf("payment %s failed for transaction %s: %v", e.Operation, e.TransactionID, e.Err)
}

// Unwrap returns the underlying error
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// Is reports PaymentError as ErrPayment regardless of the wrapped cause
func (e *PaymentError) Is(target error) bool {
	return target == ErrPayment
}

// LogFields returns a map of fields for structured logging
func (e *PaymentError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":     "payment_error",
		"operation":      e.Operation,
		"transaction_id": e.TransactionID,
		"return_code":    e.ReturnCode,
		"error_code":     CodePaymentFailed,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewPaymentError creates a detailed payment gateway error
func NewPaymentError(operation, transactionID, returnCode string, err error) error {
	return &PaymentError{
		Operation:     operation,
		TransactionID: transactionID,
		ReturnCode:    returnCode,
		Err:           err,
	}
}

// ReservationError represents an error related to a specific reservation
type ReservationError struct {
	ReservationID string
	UserID        string
	Reason        string
	Err           error
}

// Error implements the error interface for ReservationError
func (e *ReservationError) Error() string {
	return fmt.Sprintf("reservation %s (user: %s): %s - %v", e.ReservationID, e.UserID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *ReservationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ReservationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "reservation_error",
		"reservation_id": e.ReservationID,
		"user_id":        e.UserID,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewReservationError creates a detailed reservation error
func NewReservationError(reservationID, userID, reason string, err error) error {
	return &ReservationError{
		ReservationID: reservationID,
		UserID:        userID,
		Reason:        reason,
		Err:           err,
	}
}

// LogFields extracts structured fields from errors that carry them
func LogFields(err error) map[string]any {
	var fielder interface{ LogFields() map[string]any }
	if errors.As(err, &fielder) {
		return fielder.LogFields()
	}
	if err == nil {
		return map[string]any{}
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsValidationError checks if the error is caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidProductInfo) ||
		errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrVenueNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrVenueNotFound)
}

// IsConcurrentModificationError checks if the error was caused by an aborted optimistic transaction
func IsConcurrentModificationError(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsPaymentError checks if the error came from the payment gateway
func IsPaymentError(err error) bool {
	return errors.Is(err, ErrPayment)
}
