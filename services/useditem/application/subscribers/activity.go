// Package subscribers consumes the used-item domain events published on the
// in-process bus.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/services/useditem/domain/events"
)

const meterName = "github.com/ghuser/usedmarket/services/useditem"

// Subscriber is the part of the event bus the activity feed needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// Activity records marketplace activity: one structured log line and one
// counter increment per event.
type Activity struct {
	log      logger.Logger
	items    metric.Int64Counter
	reviews  metric.Int64Counter
	comments metric.Int64Counter
}

// NewActivity creates the activity counters on mp.
func NewActivity(log logger.Logger, mp metric.MeterProvider) (*Activity, error) {
	meter := mp.Meter(meterName)

	items, err := meter.Int64Counter("useditems.items.created",
		metric.WithDescription("Items listed for sale"))
	if err != nil {
		return nil, fmt.Errorf("items counter: %w", err)
	}
	reviews, err := meter.Int64Counter("useditems.reviews.added",
		metric.WithDescription("Reviews appended to items"))
	if err != nil {
		return nil, fmt.Errorf("reviews counter: %w", err)
	}
	comments, err := meter.Int64Counter("useditems.comments.added",
		metric.WithDescription("Comments appended to reviews"))
	if err != nil {
		return nil, fmt.Errorf("comments counter: %w", err)
	}

	return &Activity{log: log, items: items, reviews: reviews, comments: comments}, nil
}

// Register subscribes the activity handlers to every used-item topic and
// drains their error channels into the log until ctx is done.
func (a *Activity) Register(ctx context.Context, bus Subscriber) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		events.TopicItemListed:   a.HandleItemListed,
		events.TopicReviewAdded:  a.HandleReviewAdded,
		events.TopicCommentAdded: a.HandleCommentAdded,
	}
	for _, topic := range events.Topics {
		errCh, err := bus.Subscribe(ctx, topic, handlers[topic])
		if err != nil {
			return fmt.Errorf("register %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				a.log.ErrorContext(ctx, "activity subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}
	return nil
}

// HandleItemListed records a new listing.
func (a *Activity) HandleItemListed(ctx context.Context, msg *message.Message) error {
	var evt events.ItemListedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", events.TopicItemListed, err)
	}
	a.items.Add(ctx, 1)
	a.log.InfoContext(ctx, "item listed",
		"event_id", evt.EventID,
		"item_id", evt.ItemID,
		"seller", evt.Seller,
		"price", evt.Price,
	)
	return nil
}

// HandleReviewAdded records a new review.
func (a *Activity) HandleReviewAdded(ctx context.Context, msg *message.Message) error {
	var evt events.ReviewAddedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", events.TopicReviewAdded, err)
	}
	a.reviews.Add(ctx, 1, metric.WithAttributes(attribute.Int("rating", int(evt.Rating))))
	a.log.InfoContext(ctx, "review added",
		"event_id", evt.EventID,
		"item_id", evt.ItemID,
		"review_id", evt.ReviewID,
		"rating", evt.Rating,
	)
	return nil
}

// HandleCommentAdded records a new comment.
func (a *Activity) HandleCommentAdded(ctx context.Context, msg *message.Message) error {
	var evt events.CommentAddedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode %s: %w", events.TopicCommentAdded, err)
	}
	a.comments.Add(ctx, 1)
	a.log.InfoContext(ctx, "comment added",
		"event_id", evt.EventID,
		"item_id", evt.ItemID,
		"review_id", evt.ReviewID,
		"user", evt.User,
	)
	return nil
}
