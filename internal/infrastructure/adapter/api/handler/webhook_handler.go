package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the HMAC of a webhook body
const SignatureHeader = "X-Line-Signature"

const maxWebhookBody = 1 << 20

// SignatureValidator checks a webhook body against its signature header
type SignatureValidator func(body []byte, signature string) bool

// WebhookHandler receives chat events from the messaging platform
type WebhookHandler struct {
	chat     usecase.ChatUseCase
	validate SignatureValidator
	logger   coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(chat usecase.ChatUseCase, validate SignatureValidator, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{chat: chat, validate: validate, logger: logger}
}

// Receive handles POST /webhook. Every text message is answered; a failed
// reply is logged and does not fail the delivery.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidRequest, msgInvalidRequest)
		return
	}
	if !h.validate(body, c.GetHeader(SignatureHeader)) {
		respondError(c, h.logger, http.StatusUnauthorized, errs.ErrForbidden, "Invalid signature.")
		return
	}

	var req dto.WebhookRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		respondError(c, h.logger, http.StatusBadRequest, errs.ErrInvalidRequest, msgInvalidRequest)
		return
	}

	for _, event := range req.Events {
		if event.Type != dto.WebhookEventMessage || event.Message == nil || event.Message.Type != dto.WebhookMessageText {
			continue
		}
		if err := h.chat.HandleText(c.Request.Context(), event.ReplyToken, event.Message.Text); err != nil {
			h.logger.Warn("Webhook event not handled", map[string]any{"error": err.Error()})
		}
	}

	c.Status(http.StatusOK)
}
