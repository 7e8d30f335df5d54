// Package memory is the process-lifetime ItemRepository. Nothing survives a restart.
package memory

import (
	"context"
	"strings"
	"sync"

	itemdomain "github.com/ghuser/usedmarket/services/useditem/domain"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

// entry is a stored item plus the counter for its next review ID.
type entry struct {
	item         models.Item
	nextReviewID int
}

// ItemRepository implements repositories.ItemRepository in memory.
// All state is guarded by mu; identifiers come from monotonically increasing
// counters rather than slice lengths so they stay unique if removal is ever added.
type ItemRepository struct {
	mu      sync.RWMutex
	entries []*entry
	byID    map[int]*entry
	nextID  int
}

// NewItemRepository returns an empty repository whose first item gets ID 1.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		byID:   make(map[int]*entry),
		nextID: 1,
	}
}

// NewSeededItemRepository returns a repository pre-loaded with items. Seed items
// keep their IDs, review IDs and sold flag; the counters continue after the
// highest ID seen.
func NewSeededItemRepository(items ...models.Item) *ItemRepository {
	r := NewItemRepository()
	for _, item := range items {
		r.put(item.Clone())
	}
	return r
}

// put stores item as-is and advances counters. Caller must hold mu or own r exclusively.
func (r *ItemRepository) put(item models.Item) {
	if item.Reviews == nil {
		item.Reviews = []models.Review{}
	}
	e := &entry{item: item, nextReviewID: 1}
	for i := range e.item.Reviews {
		if e.item.Reviews[i].Comments == nil {
			e.item.Reviews[i].Comments = []models.Comment{}
		}
		if id := e.item.Reviews[i].ReviewID; id >= e.nextReviewID {
			e.nextReviewID = id + 1
		}
	}
	r.entries = append(r.entries, e)
	r.byID[item.ID] = e
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
}

// ListAvailable returns unsold items in insertion order.
func (r *ItemRepository) ListAvailable(_ context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.entries))
	for _, e := range r.entries {
		if e.item.IsSold {
			continue
		}
		items = append(items, e.item.Clone())
	}
	return items, nil
}

// Search returns items, including sold ones, whose title or description
// contains keyword case-insensitively.
func (r *ItemRepository) Search(_ context.Context, keyword string) ([]models.Item, error) {
	needle := strings.ToLower(keyword)

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0)
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.item.Title), needle) ||
			strings.Contains(strings.ToLower(e.item.Description), needle) {
			items = append(items, e.item.Clone())
		}
	}
	return items, nil
}

// Insert appends item with the next item ID. IsSold and Reviews are reset so
// a new listing always starts unsold and unreviewed.
func (r *ItemRepository) Insert(_ context.Context, item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	item.IsSold = false
	item.Reviews = []models.Review{}
	r.put(item)
	return item.Clone(), nil
}

// Exists reports whether an item with the given ID exists.
func (r *ItemRepository) Exists(_ context.Context, itemID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[itemID]
	return ok, nil
}

// FindReview returns a copy of the review with reviewID on item itemID.
func (r *ItemRepository) FindReview(_ context.Context, itemID, reviewID int) (models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, err := r.review(itemID, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	return review.Clone(), nil
}

// AppendReview appends review to item itemID with the item's next review ID.
func (r *ItemRepository) AppendReview(_ context.Context, itemID int, review models.Review) (models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[itemID]
	if !ok {
		return models.Review{}, itemdomain.ErrItemNotFound
	}
	review.ReviewID = e.nextReviewID
	review.Comments = []models.Comment{}
	e.nextReviewID++
	e.item.Reviews = append(e.item.Reviews, review)
	return review.Clone(), nil
}

// AppendComment appends comment to review reviewID of item itemID.
func (r *ItemRepository) AppendComment(_ context.Context, itemID, reviewID int, comment models.Comment) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, err := r.review(itemID, reviewID)
	if err != nil {
		return models.Comment{}, err
	}
	review.Comments = append(review.Comments, comment)
	return comment, nil
}

// review locates a stored review. Caller must hold mu.
func (r *ItemRepository) review(itemID, reviewID int) (*models.Review, error) {
	e, ok := r.byID[itemID]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	for i := range e.item.Reviews {
		if e.item.Reviews[i].ReviewID == reviewID {
			return &e.item.Reviews[i], nil
		}
	}
	return nil, itemdomain.ErrReviewNotFound
}
