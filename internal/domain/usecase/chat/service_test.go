package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	mcore "github.com/amirhossein-jamali/venue-reservation/mocks/port/core"
	mgw "github.com/amirhossein-jamali/venue-reservation/mocks/port/gateway"
	mpers "github.com/amirhossein-jamali/venue-reservation/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
)

func TestHandleText(t *testing.T) {
	ctx := context.Background()
	cfg := Config{ReserveURL: "https://liff.example.com/reserve", ManageURL: "https://liff.example.com/manage"}

	tests := []struct {
		name      string
		text      string
		setup     func(*mpers.MockVenueRepository)
		wantReply string
	}{
		{
			name: "venue link",
			text: "liff:place1",
			setup: func(v *mpers.MockVenueRepository) {
				v.On("GetByID", ctx, "place1").Return(&entity.Venue{ID: "place1", Name: "アキバ・スクエア"}, nil)
			},
			wantReply: "こちらからアキバ・スクエアの予約ができます。\nhttps://liff.example.com/reserve?placeId=place1",
		},
		{
			name: "unknown venue",
			text: "liff:nowhere",
			setup: func(v *mpers.MockVenueRepository) {
				v.On("GetByID", ctx, "nowhere").Return(nil, errs.ErrVenueNotFound)
			},
			wantReply: "不正な場所IDです。",
		},
		{
			name:      "manage reservations",
			text:      "予約の確認",
			wantReply: "こちらから予約の確認とキャンセルができます。\nhttps://liff.example.com/manage",
		},
		{
			name:      "anything else",
			text:      "hello",
			wantReply: "すみません、わかりませんでした。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venues := mpers.NewMockVenueRepository(t)
			messenger := mgw.NewMockMessagingGateway(t)
			if tt.setup != nil {
				tt.setup(venues)
			}
			messenger.On("ReplyMessage", ctx, "reply-1", gateway.TextMessage(tt.wantReply)).Return(nil)

			err := NewService(venues, messenger, mcore.NewMockLogger(t), cfg).HandleText(ctx, "reply-1", tt.text)

			assert.NoError(t, err)
		})
	}
}

func TestHandleTextSkipsVerificationTokens(t *testing.T) {
	svc := NewService(mpers.NewMockVenueRepository(t), mgw.NewMockMessagingGateway(t), mcore.NewMockLogger(t), Config{})

	assert.NoError(t, svc.HandleText(context.Background(), strings.Repeat("0", 32), "hello"))
	assert.NoError(t, svc.HandleText(context.Background(), strings.Repeat("f", 32), "hello"))
}

func TestHandleTextReplyFailure(t *testing.T) {
	ctx := context.Background()
	messenger := mgw.NewMockMessagingGateway(t)
	logger := mcore.NewMockLogger(t)
	messenger.On("ReplyMessage", ctx, "reply-1", gateway.TextMessage(fallbackText)).Return(errors.New("expired token"))
	logger.On("Warn", "Failed to reply to chat message", map[string]any{"error": "expired token"}).Once()

	err := NewService(mpers.NewMockVenueRepository(t), messenger, logger, Config{}).HandleText(ctx, "reply-1", "?")

	assert.Error(t, err)
}
