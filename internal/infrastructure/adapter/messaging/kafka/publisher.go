package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// ErrPublisherClosed is returned when publishing after Close
var ErrPublisherClosed = errors.New("publisher is closed")

// Header keys attached to every event
const (
	HeaderEventType   = "event-type"
	HeaderContentType = "content-type"
)

// Config holds the Kafka writer settings
type Config struct {
	Brokers      []string
	Topic        string
	Compression  string // gzip, snappy, lz4, zstd
	RequiredAcks int    // -1 all, 0 none, 1 leader
	MaxAttempts  int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes reservation events to a Kafka topic keyed by place id,
// so events for one venue stay ordered within a partition
type Publisher struct {
	writer messageWriter
	topic  string
	logger coreport.Logger
	mu     sync.RWMutex
	closed bool
}

var _ gateway.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher backed by a kafka-go Writer
func NewPublisher(cfg Config, logger coreport.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	var compression compress.Compression
	switch cfg.Compression {
	case "gzip":
		compression = compress.Gzip
	case "lz4":
		compression = compress.Lz4
	case "zstd":
		compression = compress.Zstd
	default:
		compression = compress.Snappy
	}

	var acks kafka.RequiredAcks
	switch cfg.RequiredAcks {
	case 0:
		acks = kafka.RequireNone
	case 1:
		acks = kafka.RequireOne
	default:
		acks = kafka.RequireAll
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: acks,
		Compression:  compression,
		MaxAttempts:  cfg.MaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			logger.Error("Kafka writer error", map[string]any{"detail": fmt.Sprintf(msg, args...)})
		}),
	}

	return newPublisher(writer, cfg.Topic, logger), nil
}

func newPublisher(writer messageWriter, topic string, logger coreport.Logger) *Publisher {
	return &Publisher{writer: writer, topic: topic, logger: logger}
}

// Publish writes one event
func (p *Publisher) Publish(ctx context.Context, event entity.ReservationEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PlaceID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderContentType, Value: []byte("application/json")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
	}

	p.logger.Debug("Reservation event published", map[string]any{
		"event_type":     string(event.Type),
		"reservation_id": event.ReservationID,
		"topic":          p.topic,
	})
	return nil
}

// Close flushes pending writes and releases the writer
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
