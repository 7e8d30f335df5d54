package repositories

import (
	"context"

	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

// ItemRepository is the storage interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations assign identifiers: item IDs from a store-wide counter and
// review IDs from a per-item counter. Every method is a single atomic
// read-modify-append and returns copies the caller may freely mutate.
type ItemRepository interface {
	// ListAvailable returns unsold items in insertion order.
	ListAvailable(ctx context.Context) ([]models.Item, error)

	// Search returns every item, sold or not, whose title or description
	// contains keyword case-insensitively.
	Search(ctx context.Context, keyword string) ([]models.Item, error)

	// Insert appends item with the next item ID and returns the stored copy.
	Insert(ctx context.Context, item models.Item) (models.Item, error)

	// Exists reports whether an item with the given ID exists.
	Exists(ctx context.Context, itemID int) (bool, error)

	// FindReview returns the review with reviewID on item itemID.
	// Returns ErrItemNotFound or ErrReviewNotFound.
	FindReview(ctx context.Context, itemID, reviewID int) (models.Review, error)

	// AppendReview appends review to item itemID with the next review ID.
	// Returns ErrItemNotFound if the item does not exist.
	AppendReview(ctx context.Context, itemID int, review models.Review) (models.Review, error)

	// AppendComment appends comment to review reviewID of item itemID.
	// Returns ErrItemNotFound or ErrReviewNotFound.
	AppendComment(ctx context.Context, itemID, reviewID int, comment models.Comment) (models.Comment, error)
}
