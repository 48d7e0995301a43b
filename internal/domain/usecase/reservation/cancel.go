package reservation

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// Cancel removes a reservation and both of its index entries. Only the owner may cancel.
func (s *Service) Cancel(ctx context.Context, userID string, reservationID string) (err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe(OperationCancel, start, err) }()

	if err := s.validator.ValidateUserID(userID); err != nil {
		return err
	}
	if strings.TrimSpace(reservationID) == "" {
		return errs.ErrInvalidRequest
	}

	var removed *entity.Reservation
	err = retryOnConflict(ctx, s.cfg.Retry, OperationCancel, func(attempt int) error {
		r, err := s.reservations.Get(ctx, reservationID)
		if err != nil {
			return err
		}
		if !r.IsOwnedBy(userID) {
			return errs.NewReservationError(reservationID, userID, "not the owner", errs.ErrForbidden)
		}
		if err := s.reservations.Remove(ctx, r); err != nil {
			return err
		}
		removed = r
		return nil
	}, s.logger, s.metrics)
	if err != nil {
		fields := errs.LogFields(err)
		fields["reservation_id"] = reservationID
		fields["user_id"] = userID
		s.logger.Warn("Failed to cancel reservation", fields)
		return err
	}

	s.logger.Info("Reservation cancelled", map[string]any{
		"reservation_id": removed.ID,
		"user_id":        userID,
		"place_id":       removed.PlaceID(),
	})

	s.publish(ctx, entity.EventReservationCancelled, removed)
	return nil
}
