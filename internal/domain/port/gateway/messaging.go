package gateway

import "context"

// MessageType distinguishes outbound message kinds
type MessageType string

// Message types
const (
	MessageTypeText    MessageType = "text"
	MessageTypeSticker MessageType = "sticker"
)

// Message is an outbound chat message
type Message struct {
	Type      MessageType `json:"type"`
	Text      string      `json:"text,omitempty"`
	PackageID string      `json:"packageId,omitempty"`
	StickerID string      `json:"stickerId,omitempty"`
}

// TextMessage builds a text message
func TextMessage(text string) Message {
	return Message{Type: MessageTypeText, Text: text}
}

// StickerMessage builds a sticker message
func StickerMessage(packageID, stickerID string) Message {
	return Message{Type: MessageTypeSticker, PackageID: packageID, StickerID: stickerID}
}

// MessagingGateway delivers notifications to chat users. Callers treat it as
// fire-and-forget: failures are logged, not retried.
type MessagingGateway interface {
	PushMessage(ctx context.Context, userID string, messages ...Message) error
	ReplyMessage(ctx context.Context, replyToken string, messages ...Message) error
}
