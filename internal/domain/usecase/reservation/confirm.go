package reservation

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// Confirm turns the ledger entry into a reservation and captures the payment.
//
// The reservation, both index entries and the retirement of the ledger entry
// commit as one batch. The gateway confirm runs only after that commit; if it
// fails the reservation stays and the user is notified. A batch that cannot
// commit also notifies the user, except when the transaction is unknown.
func (s *Service) Confirm(ctx context.Context, transactionID string) (reservation *entity.Reservation, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe(OperationConfirm, start, err) }()

	if strings.TrimSpace(transactionID) == "" {
		return nil, errs.ErrInvalidRequest
	}

	// txn keeps the last entry read so a failed commit can still reach the user
	var txn *entity.Transaction
	err = retryOnConflict(ctx, s.cfg.Retry, OperationConfirm, func(attempt int) error {
		staged, err := s.ledger.Retrieve(ctx, transactionID)
		if err != nil {
			return err
		}
		txn = staged

		inserted, err := s.reservations.Insert(ctx, staged)
		if err != nil {
			return err
		}

		reservation = inserted
		return nil
	}, s.logger, s.metrics)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Info("Confirm for unknown or expired transaction", map[string]any{
				"transaction_id": transactionID,
			})
			return nil, err
		}

		fields := map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		}
		if txn != nil {
			fields["user_id"] = txn.UserID
		}
		s.logger.Error("Failed to confirm reservation", fields)

		// The user already approved the charge
		if txn != nil {
			s.metrics.IncCompensation("persist_failed")
			s.notifier.NotifyFailure(ctx, txn.UserID)
		}
		return nil, err
	}

	if err := s.payment.Confirm(ctx, txn.ID, txn.Amount, txn.Currency); err != nil {
		payErr := err
		if !errs.IsPaymentError(err) {
			payErr = errs.NewPaymentError("confirm", txn.ID, "", err)
		}
		fields := errs.LogFields(payErr)
		fields["reservation_id"] = reservation.ID
		fields["user_id"] = txn.UserID
		s.logger.Error("Payment confirm failed after reservation commit", fields)

		s.metrics.IncCompensation("payment_confirm_failed")
		s.notifier.NotifyFailure(ctx, txn.UserID)
		return reservation, payErr
	}

	s.logger.Info("Reservation confirmed", map[string]any{
		"reservation_id": reservation.ID,
		"user_id":        reservation.ReservedBy,
		"place_id":       reservation.PlaceID(),
		"date":           reservation.ProductInfo.FormattedDate(),
		"time":           reservation.ProductInfo.Time,
	})

	s.notifier.NotifyReserved(ctx, txn.UserID, txn.ProductName)
	s.publish(ctx, entity.EventReservationConfirmed, reservation)

	return reservation, nil
}

// publish emits a lifecycle event; failures are only logged
func (s *Service) publish(ctx context.Context, eventType entity.EventType, r *entity.Reservation) {
	if s.events == nil {
		return
	}
	event := entity.NewReservationEvent(eventType, r, s.timeProvider.Now())
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish reservation event", map[string]any{
			"event_type":     string(eventType),
			"reservation_id": r.ID,
			"error":          err.Error(),
		})
	}
}
