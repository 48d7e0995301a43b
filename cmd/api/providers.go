package main

import (
	"fmt"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/messaging/kafka"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/messaging/line"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/messaging/noop"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/payment/linepay"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/payment/omise"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/config"
)

// Payment providers
const (
	providerLinePay = "linepay"
	providerOmise   = "omise"
)

func newPaymentGateway(cfg *config.Config, logger coreport.Logger) (gateway.PaymentGateway, error) {
	switch cfg.Payment.Provider {
	case providerLinePay:
		return linepay.NewClient(linepay.Config{
			ChannelID:     cfg.Payment.LinePay.ChannelID,
			ChannelSecret: cfg.Payment.LinePay.ChannelSecret,
			Sandbox:       cfg.Payment.LinePay.Sandbox,
			BaseURL:       cfg.Payment.LinePay.BaseURL,
			CancelURL:     cfg.Payment.LinePay.CancelURL,
			Timeout:       cfg.Payment.LinePay.Timeout,
		}, nil, logger)
	case providerOmise:
		return omise.NewClient(omise.Config{
			PublicKey:  cfg.Payment.Omise.PublicKey,
			SecretKey:  cfg.Payment.Omise.SecretKey,
			SourceType: cfg.Payment.Omise.SourceType,
		}, nil, logger)
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", cfg.Payment.Provider)
	}
}

// newMessenger returns the chat channel and, when the channel can receive
// webhooks, the validator for their signatures
func newMessenger(cfg *config.Config, logger coreport.Logger) (gateway.MessagingGateway, handler.SignatureValidator, error) {
	if !cfg.Messaging.Line.Enabled {
		logger.Warn("Chat channel disabled, notifications are only logged", nil)
		return noop.Messenger{Logger: logger}, nil, nil
	}

	client, err := line.NewClient(line.Config{
		ChannelAccessToken: cfg.Messaging.Line.ChannelAccessToken,
		ChannelSecret:      cfg.Messaging.Line.ChannelSecret,
		BaseURL:            cfg.Messaging.Line.BaseURL,
		Timeout:            cfg.Messaging.Line.Timeout,
		RequestsPerSecond:  cfg.Messaging.Line.RequestsPerSecond,
		Burst:              cfg.Messaging.Line.Burst,
	}, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, client.ValidateSignature, nil
}

func newEventPublisher(cfg *config.Config, logger coreport.Logger) (gateway.EventPublisher, error) {
	if !cfg.Events.Kafka.Enabled {
		return noop.Publisher{}, nil
	}
	return kafka.NewPublisher(kafka.Config{
		Brokers:      cfg.Events.Kafka.Brokers,
		Topic:        cfg.Events.Kafka.Topic,
		Compression:  cfg.Events.Kafka.Compression,
		RequiredAcks: cfg.Events.Kafka.RequiredAcks,
		MaxAttempts:  cfg.Events.Kafka.MaxAttempts,
		BatchTimeout: cfg.Events.Kafka.BatchTimeoutMs,
		WriteTimeout: cfg.Events.Kafka.WriteTimeout,
	}, logger)
}
