package reservation

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
)

// Sticker ids of the chat platform's default package
const (
	stickerPackage       = "2"
	stickerCelebrate     = "144"
	stickerApologize     = "38"
	reservedTextTemplate = "おめでとうございます！ %s を予約しました。"
	failureText          = "申し訳ありません。不明なエラーが発生しました。"
)

// Notifier pushes best-effort chat notifications. Delivery failures are
// logged and swallowed.
type Notifier struct {
	messenger gateway.MessagingGateway
	logger    coreport.Logger
}

// NewNotifier creates a notifier; a nil messenger disables notifications
func NewNotifier(messenger gateway.MessagingGateway, logger coreport.Logger) *Notifier {
	return &Notifier{messenger: messenger, logger: logger}
}

// NotifyReserved tells the user their reservation went through
func (n *Notifier) NotifyReserved(ctx context.Context, userID, productName string) {
	n.push(ctx, userID, "reserved",
		gateway.StickerMessage(stickerPackage, stickerCelebrate),
		gateway.TextMessage(fmt.Sprintf(reservedTextTemplate, productName)),
	)
}

// NotifyFailure tells the user something went wrong on our side
func (n *Notifier) NotifyFailure(ctx context.Context, userID string) {
	n.push(ctx, userID, "failure",
		gateway.StickerMessage(stickerPackage, stickerApologize),
		gateway.TextMessage(failureText),
	)
}

func (n *Notifier) push(ctx context.Context, userID, kind string, messages ...gateway.Message) {
	if n.messenger == nil || userID == "" {
		return
	}
	if err := n.messenger.PushMessage(ctx, userID, messages...); err != nil {
		n.logger.Warn("Failed to push notification", map[string]any{
			"user_id": userID,
			"kind":    kind,
			"error":   err.Error(),
		})
	}
}
