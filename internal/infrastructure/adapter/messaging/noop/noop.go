package noop

import (
	"context"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
)

// Publisher drops events. Used when no broker is configured.
type Publisher struct{}

var _ gateway.EventPublisher = Publisher{}

// Publish does nothing
func (Publisher) Publish(context.Context, entity.ReservationEvent) error { return nil }

// Close does nothing
func (Publisher) Close() error { return nil }

// Messenger logs messages instead of delivering them. Used when no chat channel is configured.
type Messenger struct {
	Logger coreport.Logger
}

var _ gateway.MessagingGateway = Messenger{}

// PushMessage logs the push at debug level
func (m Messenger) PushMessage(_ context.Context, userID string, messages ...gateway.Message) error {
	m.Logger.Debug("Push message skipped", map[string]any{"user_id": userID, "count": len(messages)})
	return nil
}

// ReplyMessage logs the reply at debug level
func (m Messenger) ReplyMessage(_ context.Context, replyToken string, messages ...gateway.Message) error {
	m.Logger.Debug("Reply message skipped", map[string]any{"reply_token": replyToken, "count": len(messages)})
	return nil
}
