package gateway

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
)

// EventPublisher publishes reservation lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event entity.ReservationEvent) error
	Close() error
}
