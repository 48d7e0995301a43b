package usecase

import "context"

// ChatUseCase answers chat messages received through the messaging webhook
type ChatUseCase interface {
	// HandleText replies to a text message sent by a user
	HandleText(ctx context.Context, replyToken string, text string) error
}
