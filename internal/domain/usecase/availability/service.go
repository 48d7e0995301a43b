package availability

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"golang.org/x/sync/errgroup"
)

// Operation names reported to metrics
const (
	OperationAvailableSlots   = "available_slots"
	OperationUserReservations = "user_reservations"
)

// DefaultFetchConcurrency bounds parallel reservation reads per query
const DefaultFetchConcurrency = 16

// Service answers slot availability and listing queries from the index sets
type Service struct {
	reservations     persistence.ReservationRepository
	metrics          coreport.MetricsRecorder
	timeProvider     coreport.TimeProvider
	logger           coreport.Logger
	location         *time.Location
	fetchConcurrency int
}

var _ usecase.AvailabilityUseCase = (*Service)(nil)

// NewService creates a new availability service. Slot end times are compared in loc.
func NewService(
	reservations persistence.ReservationRepository,
	metrics coreport.MetricsRecorder,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		reservations:     reservations,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
		location:         loc,
		fetchConcurrency: DefaultFetchConcurrency,
	}
}

// AvailableSlots returns the daily periods still free at a venue on a yyyyMMdd date
func (s *Service) AvailableSlots(ctx context.Context, placeID string, date string) (slots []string, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe(OperationAvailableSlots, start, err) }()

	if strings.TrimSpace(placeID) == "" {
		return nil, errs.ErrInvalidRequest
	}
	if _, err := entity.ParseDate(date); err != nil {
		return nil, err
	}

	ids, err := s.reservations.ListByVenue(ctx, placeID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	reserved := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		if !r.ProductInfo.IsOnDate(date) {
			continue
		}
		slot, err := r.ProductInfo.Slot()
		if err != nil {
			s.logger.Warn("Skipping reservation with unparseable slot", map[string]any{
				"reservation_id": r.ID,
				"time":           r.ProductInfo.Time,
			})
			continue
		}
		reserved[slot.String()] = true
	}

	return entity.FreePeriods(reserved), nil
}

// UserReservations lists the user's reservations that have not ended yet,
// optionally restricted to one venue, ordered by start time
func (s *Service) UserReservations(ctx context.Context, userID string, placeID string) (list []*entity.Reservation, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe(OperationUserReservations, start, err) }()

	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}

	ids, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := start.In(s.location)
	list = make([]*entity.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if placeID != "" && r.PlaceID() != placeID {
			continue
		}
		if !r.IsUpcoming(now, s.location) {
			continue
		}
		list = append(list, r)
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, _ := list[i].ProductInfo.StartsAt(s.location)
		b, _ := list[j].ProductInfo.StartsAt(s.location)
		if a.Equal(b) {
			return list[i].ID < list[j].ID
		}
		return a.Before(b)
	})

	return list, nil
}

// fetch loads reservations concurrently. Ids whose record vanished between
// the index read and the fetch, or whose payload is corrupt, are skipped.
func (s *Service) fetch(ctx context.Context, ids []string) ([]*entity.Reservation, error) {
	var (
		mu  sync.Mutex
		out = make([]*entity.Reservation, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			r, err := s.reservations.Get(gctx, id)
			switch {
			case err == nil:
			case errs.IsNotFoundError(err), errs.IsValidationError(err):
				s.logger.Warn("Skipping unreadable reservation", map[string]any{
					"reservation_id": id,
					"error":          err.Error(),
				})
				return nil
			default:
				return err
			}

			mu.Lock()
			out = append(out, r)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) observe(operation string, start time.Time, err error) {
	outcome := coreport.OutcomeSuccess
	if err != nil {
		outcome = coreport.OutcomeFailure
	}
	s.metrics.ObserveOperation(operation, outcome, s.timeProvider.Since(start).Std())
}
