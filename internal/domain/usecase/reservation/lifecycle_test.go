package reservation_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/usecase/reservation"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/kvstore/memory"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/time"
	mgw "github.com/amirhossein-jamali/venue-reservation/mocks/port/gateway"
	mpers "github.com/amirhossein-jamali/venue-reservation/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingMetrics records retries so the tests can assert a conflict happened
type countingMetrics struct {
	mu       sync.Mutex
	retries  map[string]int
	outcomes map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{retries: map[string]int{}, outcomes: map[string]int{}}
}

func (m *countingMetrics) ObserveOperation(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[operation+"/"+outcome]++
}

func (m *countingMetrics) IncConflictRetry(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries[operation]++
}

func (m *countingMetrics) IncCompensation(string) {}

type harness struct {
	store        *memory.Store
	reservations *repository.ReservationRepository
	service      *reservation.Service
	payment      *mgw.MockPaymentGateway
	metrics      *countingMetrics
}

func newHarness(t *testing.T) *harness {
	log := logger.NewNoopLogger()
	clock := timeprovider.NewRealTimeProvider(time.UTC)
	store := memory.NewStore(clock)

	venues := mpers.NewMockVenueRepository(t)
	venues.On("GetByID", mock.Anything, "place1").
		Return(&entity.Venue{ID: "place1", Name: "Akiba Square", Price: 500}, nil).Maybe()

	payment := mgw.NewMockPaymentGateway(t)
	payment.On("Confirm", mock.Anything, mock.Anything, mock.Anything, "JPY").Return(nil).Maybe()

	h := &harness{
		store:        store,
		reservations: repository.NewReservationRepository(store, log),
		payment:      payment,
		metrics:      newCountingMetrics(),
	}

	cfg := reservation.DefaultConfig()
	cfg.ConfirmURL = "https://example.com/pay/confirm"
	cfg.Retry = reservation.RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	h.service = reservation.NewService(reservation.Dependencies{
		Ledger:       repository.NewTransactionLedger(store, log),
		Reservations: h.reservations,
		Venues:       venues,
		Payment:      payment,
		Metrics:      h.metrics,
		TimeProvider: clock,
		Logger:       log,
	}, cfg)
	return h
}

func (h *harness) initiate(t *testing.T, txID, userID, slot string) {
	t.Helper()
	h.payment.On("Reserve", mock.Anything, mock.MatchedBy(func(req gateway.ReserveRequest) bool {
		return req.OrderID[:len(userID)+1] == userID+"-"
	})).Return(&gateway.ReserveResult{TransactionID: txID, PaymentURL: "https://pay.example.com/" + txID}, nil).Once()

	result, err := h.service.Initiate(context.Background(), usecase.InitiateRequest{
		UserID: userID,
		ProductInfo: entity.ProductInfo{
			PlaceID: "place1", Year: 2030, Month: 1, Day: 2, Time: slot,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, txID, result.TransactionID)
	assert.Equal(t, int64(500), result.Amount)
	assert.Equal(t, "JPY", result.Currency)
	assert.NotEmpty(t, result.PaymentURL)
}

// requireConsistent checks the record exists iff both index sets reference it
func (h *harness) requireConsistent(t *testing.T, id, userID string, want bool) {
	t.Helper()
	ctx := context.Background()

	_, err := h.reservations.Get(ctx, id)
	byUser, uerr := h.reservations.ListByUser(ctx, userID)
	require.NoError(t, uerr)
	byVenue, verr := h.reservations.ListByVenue(ctx, "place1")
	require.NoError(t, verr)

	assert.Equal(t, want, err == nil, "record %s", id)
	assert.Equal(t, want, contains(byUser, id), "user index %s", id)
	assert.Equal(t, want, contains(byVenue, id), "venue index %s", id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestLifecycle_ConfirmIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.initiate(t, "tx-1", "U1", "10:00-12:00")

	first, err := h.service.Confirm(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", first.ID)
	assert.Equal(t, "Akiba Square", first.ProductInfo.PlaceName)
	h.requireConsistent(t, "tx-1", "U1", true)

	_, err = h.service.Confirm(ctx, "tx-1")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	byVenue, err := h.reservations.ListByVenue(ctx, "place1")
	require.NoError(t, err)
	assert.Len(t, byVenue, 1)
	h.payment.AssertNumberOfCalls(t, "Confirm", 1)
}

func TestLifecycle_CancelRemovesEveryReference(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.initiate(t, "tx-1", "U1", "10:00-12:00")
	_, err := h.service.Confirm(ctx, "tx-1")
	require.NoError(t, err)

	err = h.service.Cancel(ctx, "U2", "tx-1")
	assert.ErrorIs(t, err, errs.ErrForbidden)
	h.requireConsistent(t, "tx-1", "U1", true)

	require.NoError(t, h.service.Cancel(ctx, "U1", "tx-1"))
	h.requireConsistent(t, "tx-1", "U1", false)

	assert.ErrorIs(t, h.service.Cancel(ctx, "U1", "tx-1"), errs.ErrReservationNotFound)
}

func TestLifecycle_ConcurrentConfirmsOnSameSlotBothCommit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.initiate(t, "tx-A", "UA", "10:00-12:00")
	h.initiate(t, "tx-B", "UB", "10:00-12:00")

	// tx-B commits between tx-A's watch and its batch, touching the shared venue index
	var competing error
	h.store.SetBeforeExecHook(func(keys []string) {
		h.store.SetBeforeExecHook(nil)
		_, competing = h.service.Confirm(ctx, "tx-B")
	})

	_, err := h.service.Confirm(ctx, "tx-A")
	require.NoError(t, err)
	require.NoError(t, competing)

	assert.GreaterOrEqual(t, h.metrics.retries[reservation.OperationConfirm], 1)
	h.requireConsistent(t, "tx-A", "UA", true)
	h.requireConsistent(t, "tx-B", "UB", true)

	byVenue, err := h.reservations.ListByVenue(ctx, "place1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tx-A", "tx-B"}, byVenue)
}

func TestLifecycle_ParallelConfirms(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	const n = 8
	for i := 0; i < n; i++ {
		h.initiate(t, fmt.Sprintf("tx-%d", i), fmt.Sprintf("U%d", i), "14:00-16:00")
	}

	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.service.Confirm(ctx, fmt.Sprintf("tx-%d", i))
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)

	committed := 0
	for err := range errCh {
		if err == nil {
			committed++
			continue
		}
		// only an exhausted retry budget may fail, and it must leave no trace
		assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	}

	byVenue, err := h.reservations.ListByVenue(ctx, "place1")
	require.NoError(t, err)
	assert.Len(t, byVenue, committed)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("tx-%d", i)
		h.requireConsistent(t, id, fmt.Sprintf("U%d", i), contains(byVenue, id))
	}
}
