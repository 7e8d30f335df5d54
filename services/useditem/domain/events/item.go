package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the used-item service.
const (
	TopicItemListed   = "useditem.listed"
	TopicReviewAdded  = "useditem.review_added"
	TopicCommentAdded = "useditem.comment_added"
)

// Topics lists every topic this bounded context publishes.
var Topics = []string{TopicItemListed, TopicReviewAdded, TopicCommentAdded}

// SchemaVersion is stamped on every event; increment on breaking changes.
const SchemaVersion = 1

// ItemListedEvent is published after a new Item is appended to the store.
type ItemListedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`
	ItemID     int       `json:"item_id"`
	Title      string    `json:"title"`
	Seller     string    `json:"seller"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReviewAddedEvent is published after a Review is appended to an Item.
type ReviewAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int       `json:"item_id"`
	ReviewID   int       `json:"review_id"`
	Rating     float64   `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CommentAddedEvent is published after a Comment is appended to a Review.
type CommentAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int       `json:"item_id"`
	ReviewID   int       `json:"review_id"`
	User       string    `json:"user"`
	OccurredAt time.Time `json:"occurred_at"`
}
