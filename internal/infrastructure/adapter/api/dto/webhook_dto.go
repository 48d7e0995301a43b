package dto

// Webhook event and message types handled by the bot
const (
	WebhookEventMessage = "message"
	WebhookMessageText  = "text"
)

// WebhookRequest is the body the messaging platform posts to /webhook
type WebhookRequest struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

// WebhookEvent is one event of a webhook delivery
type WebhookEvent struct {
	Type       string          `json:"type"`
	ReplyToken string          `json:"replyToken"`
	Message    *WebhookMessage `json:"message,omitempty"`
}

// WebhookMessage is the message carried by a message event
type WebhookMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}
