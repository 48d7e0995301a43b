package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/entity"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   int
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed++
	return nil
}

func testEvent() entity.ReservationEvent {
	return entity.ReservationEvent{
		Type:          entity.EventReservationConfirmed,
		ReservationID: "tx-1",
		UserID:        "U1",
		PlaceID:       "place1",
		Date:          "20300102",
		Time:          "10:00-12:00",
		OccurredAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "reservations", logger.NewNoopLogger())

	require.NoError(t, p.Publish(context.Background(), testEvent()))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "place1", string(msg.Key))
	assert.Equal(t, HeaderEventType, msg.Headers[0].Key)
	assert.Equal(t, "reservation.confirmed", string(msg.Headers[0].Value))

	var decoded entity.ReservationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, testEvent(), decoded)
}

func TestPublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newPublisher(w, "reservations", logger.NewNoopLogger())

	err := p.Publish(context.Background(), testEvent())

	assert.ErrorContains(t, err, "leader not available")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "reservations", logger.NewNoopLogger())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), testEvent()), ErrPublisherClosed)
}

func TestNewPublisherValidation(t *testing.T) {
	_, err := NewPublisher(Config{Topic: "reservations"}, logger.NewNoopLogger())
	assert.Error(t, err)

	_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}}, logger.NewNoopLogger())
	assert.Error(t, err)

	p, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "reservations"}, logger.NewNoopLogger())
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
