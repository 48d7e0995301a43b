package chat

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/usecase"
)

// Command prefixes understood by the bot
const (
	venueLinkPrefix = "liff:"
	manageKeyword   = "予約"
)

// Reply texts
const (
	venueLinkTemplate = "こちらから%sの予約ができます。\n%s?placeId=%s"
	manageTemplate    = "こちらから予約の確認とキャンセルができます。\n%s"
	unknownVenueText  = "不正な場所IDです。"
	fallbackText      = "すみません、わかりませんでした。"
)

// Config holds the front-end links the bot hands out
type Config struct {
	ReserveURL string // Reservation page, receives ?placeId=
	ManageURL  string // Page listing the user's reservations
}

// Service answers text messages with links to the reservation pages
type Service struct {
	venues    persistence.VenueRepository
	messenger gateway.MessagingGateway
	logger    coreport.Logger
	cfg       Config
}

var _ usecase.ChatUseCase = (*Service)(nil)

// NewService creates a new chat service
func NewService(venues persistence.VenueRepository, messenger gateway.MessagingGateway, logger coreport.Logger, cfg Config) *Service {
	return &Service{venues: venues, messenger: messenger, logger: logger, cfg: cfg}
}

// HandleText replies to one text message. Connection-check tokens sent by the
// platform when the webhook is registered are ignored.
func (s *Service) HandleText(ctx context.Context, replyToken string, text string) error {
	if IsVerificationToken(replyToken) {
		return nil
	}

	reply, err := s.replyFor(ctx, strings.TrimSpace(text))
	if err != nil {
		return err
	}

	if err := s.messenger.ReplyMessage(ctx, replyToken, gateway.TextMessage(reply)); err != nil {
		s.logger.Warn("Failed to reply to chat message", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}

func (s *Service) replyFor(ctx context.Context, text string) (string, error) {
	switch {
	case strings.HasPrefix(text, venueLinkPrefix):
		placeID := strings.TrimPrefix(text, venueLinkPrefix)
		venue, err := s.venues.GetByID(ctx, placeID)
		if err != nil {
			if errs.IsNotFoundError(err) {
				return unknownVenueText, nil
			}
			return "", err
		}
		return fmt.Sprintf(venueLinkTemplate, venue.Name, s.cfg.ReserveURL, placeID), nil

	case strings.HasPrefix(text, manageKeyword):
		return fmt.Sprintf(manageTemplate, s.cfg.ManageURL), nil

	default:
		return fallbackText, nil
	}
}

// IsVerificationToken reports whether the reply token belongs to a webhook connection check
func IsVerificationToken(replyToken string) bool {
	return replyToken == strings.Repeat("0", 32) || replyToken == strings.Repeat("f", 32)
}
