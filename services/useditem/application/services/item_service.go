package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/usedmarket/pkg/logger"
	itemdomain "github.com/ghuser/usedmarket/services/useditem/domain"
	"github.com/ghuser/usedmarket/services/useditem/domain/events"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
	"github.com/ghuser/usedmarket/services/useditem/domain/repositories"
	domainsvcs "github.com/ghuser/usedmarket/services/useditem/domain/services"
)

// EventPublisher publishes a JSON-encoded domain event to a topic.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// SearchCache caches keyword search results. Get returns redis.Nil on a miss,
// together with the generation Set must write the freshly computed results to.
type SearchCache interface {
	Get(ctx context.Context, keyword string, dst any) (int64, error)
	Set(ctx context.Context, keyword string, gen int64, results any) error
	Invalidate(ctx context.Context) error
}

// ItemService orchestrates listing, searching, and the append-only review and
// comment threads of used items.
//
// Every mutation runs in the same order: look up the target, validate the
// input, append to the repository, invalidate the search cache, publish an
// event. Cache and publish failures are logged and never fail the request.
type ItemService struct {
	repo   repositories.ItemRepository
	cache  SearchCache    // nil disables caching
	events EventPublisher // nil disables publishing
	log    logger.Logger
	now    func() time.Time
}

// NewItemService returns an ItemService. cache and publisher may be nil.
func NewItemService(repo repositories.ItemRepository, cache SearchCache, publisher EventPublisher, log logger.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		cache:  cache,
		events: publisher,
		log:    log,
		now:    time.Now,
	}
}

// ListAvailable returns every unsold item in insertion order.
func (s *ItemService) ListAvailable(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create validates draft and appends it as a new, unsold, unreviewed item.
func (s *ItemService) Create(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	item, err := domainsvcs.ValidateItemDraft(draft)
	if err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}

	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		return models.Item{}, fmt.Errorf("insert item: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.TopicItemListed, events.ItemListedEvent{
		EventID:    uuid.New(),
		Version:    events.SchemaVersion,
		ItemID:     created.ID,
		Title:      created.Title,
		Seller:     created.Seller,
		Price:      created.Price,
		OccurredAt: s.now().UTC(),
	})
	return created, nil
}

// Search returns every item, sold or not, whose title or description contains
// keyword case-insensitively. Results are served from the cache when one is
// configured; any cache error falls through to the repository.
//
// A miss is filled under the generation read before the repository, so a
// result computed before a concurrent mutation is never served after it.
func (s *ItemService) Search(ctx context.Context, keyword string) ([]models.Item, error) {
	if err := domainsvcs.ValidateKeyword(keyword); err != nil {
		return nil, err
	}

	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		var cached []models.Item
		g, err := s.cache.Get(ctx, keyword, &cached)
		switch {
		case err == nil:
			return cached, nil
		case errors.Is(err, redis.Nil):
			gen, fill = g, true
		default:
			s.log.WarnContext(ctx, "search cache read failed", "error", err)
		}
	}

	items, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}

	if fill {
		if err := s.cache.Set(ctx, keyword, gen, items); err != nil {
			s.log.WarnContext(ctx, "search cache write failed", "error", err)
		}
	}
	return items, nil
}

// AddReview appends a review to item itemID and returns it with its new ReviewID.
// Returns ErrItemNotFound before looking at the draft.
func (s *ItemService) AddReview(ctx context.Context, itemID int, draft models.ReviewDraft) (models.Review, error) {
	exists, err := s.repo.Exists(ctx, itemID)
	if err != nil {
		return models.Review{}, fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return models.Review{}, itemdomain.ErrItemNotFound
	}

	review, err := domainsvcs.ValidateReviewDraft(draft)
	if err != nil {
		return models.Review{}, fmt.Errorf("add review: %w", err)
	}

	created, err := s.repo.AppendReview(ctx, itemID, review)
	if err != nil {
		return models.Review{}, fmt.Errorf("append review: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.TopicReviewAdded, events.ReviewAddedEvent{
		EventID:    uuid.New(),
		Version:    events.SchemaVersion,
		ItemID:     itemID,
		ReviewID:   created.ReviewID,
		Rating:     created.Rating,
		OccurredAt: s.now().UTC(),
	})
	return created, nil
}

// AddComment appends a comment to review reviewID of item itemID.
// Returns ErrItemNotFound or ErrReviewNotFound before looking at the draft.
func (s *ItemService) AddComment(ctx context.Context, itemID, reviewID int, draft models.CommentDraft) (models.Comment, error) {
	if _, err := s.repo.FindReview(ctx, itemID, reviewID); err != nil {
		return models.Comment{}, fmt.Errorf("find review: %w", err)
	}

	comment, err := domainsvcs.ValidateCommentDraft(draft)
	if err != nil {
		return models.Comment{}, fmt.Errorf("add comment: %w", err)
	}

	created, err := s.repo.AppendComment(ctx, itemID, reviewID, comment)
	if err != nil {
		return models.Comment{}, fmt.Errorf("append comment: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.TopicCommentAdded, events.CommentAddedEvent{
		EventID:    uuid.New(),
		Version:    events.SchemaVersion,
		ItemID:     itemID,
		ReviewID:   reviewID,
		User:       created.User,
		OccurredAt: s.now().UTC(),
	})
	return created, nil
}

func (s *ItemService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "search cache invalidation failed", "error", err)
	}
}

func (s *ItemService) publish(ctx context.Context, topic string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, topic, payload); err != nil {
		s.log.ErrorContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}
