package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	event := map[string]any{"type": "cart_item_added", "cartID": "abc", "quantity": 2}
	require.NoError(t, p.PublishEvent(context.Background(), "cart_events", "abc", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "cart_events", msg.Topic)
	assert.Equal(t, []byte("abc"), msg.Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "cart_item_added", got["type"])
	assert.Equal(t, float64(2), got["quantity"])
	assert.Equal(t, "2024-05-01T12:00:00Z", got["occurredAt"])
	assert.NotEmpty(t, got["eventId"])
	assert.NotContains(t, event, "eventId")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishEvent_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w)

	err := p.PublishEvent(context.Background(), "order_events", "1", map[string]any{"type": "order_created"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_events")
}

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}
