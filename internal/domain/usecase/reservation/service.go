package reservation

import (
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
)

// Operation names reported to logs and metrics
const (
	OperationInitiate = "initiate"
	OperationConfirm  = "confirm"
	OperationCancel   = "cancel"
)

// Config holds lifecycle settings
type Config struct {
	TransactionTTL time.Duration
	Currency       string
	ConfirmURL     string
	Location       *time.Location
	Retry          RetryConfig
}

// DefaultConfig returns the default lifecycle configuration
func DefaultConfig() Config {
	return Config{
		TransactionTTL: entity.DefaultTransactionTTL,
		Currency:       "JPY",
		Location:       time.UTC,
		Retry:          DefaultRetryConfig(),
	}
}

// Dependencies groups the collaborators of the lifecycle controller
type Dependencies struct {
	Ledger       persistence.TransactionLedger
	Reservations persistence.ReservationRepository
	Venues       persistence.VenueRepository
	Payment      gateway.PaymentGateway
	Messenger    gateway.MessagingGateway // Optional
	Events       gateway.EventPublisher   // Optional
	Metrics      coreport.MetricsRecorder
	TimeProvider coreport.TimeProvider
	Logger       coreport.Logger
}

// Service drives reservations from payment initiation to confirmation or cancellation
type Service struct {
	ledger       persistence.TransactionLedger
	reservations persistence.ReservationRepository
	venues       persistence.VenueRepository
	payment      gateway.PaymentGateway
	events       gateway.EventPublisher
	notifier     *Notifier
	validator    *RequestValidator
	metrics      coreport.MetricsRecorder
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	cfg          Config
}

var _ usecase.ReservationUseCase = (*Service)(nil)

// NewService creates a new reservation lifecycle service
func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.TransactionTTL <= 0 {
		cfg.TransactionTTL = entity.DefaultTransactionTTL
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Retry.MaxRetries < 1 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &Service{
		ledger:       deps.Ledger,
		reservations: deps.Reservations,
		venues:       deps.Venues,
		payment:      deps.Payment,
		events:       deps.Events,
		notifier:     NewNotifier(deps.Messenger, deps.Logger),
		validator:    NewRequestValidator(),
		metrics:      deps.Metrics,
		timeProvider: deps.TimeProvider,
		logger:       deps.Logger,
		cfg:          cfg,
	}
}

// observe reports an operation's duration and outcome
func (s *Service) observe(operation string, start time.Time, err error) {
	outcome := coreport.OutcomeSuccess
	if err != nil {
		outcome = coreport.OutcomeFailure
	}
	s.metrics.ObserveOperation(operation, outcome, s.timeProvider.Since(start).Std())
}
