package service

import (
	"context"
	"time"

	"github.com/retailtrove/storefront/pkg/logging"
)

const (
	TopicCartEvents    = "cart_events"
	TopicOrderEvents   = "order_events"
	TopicProductEvents = "product_events"
)

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
}

type Metrics interface {
	CartItemAdded(quantity int)
	OrderCreated()
}

const publishTimeout = 5 * time.Second

// publish logs delivery failures instead of returning them.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
