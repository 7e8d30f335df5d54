package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/logger"
	itemdomain "github.com/ghuser/usedmarket/services/useditem/domain"
	"github.com/ghuser/usedmarket/services/useditem/domain/events"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
	"github.com/ghuser/usedmarket/services/useditem/domain/repositories"
	"github.com/ghuser/usedmarket/services/useditem/infrastructure/persistence/memory"
)

// fakeCache is an in-process SearchCache that round-trips through JSON like
// Redis does and keys entries by generation like SearchCache.
type fakeCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[string][]byte
	invalidated int
	failReads   bool
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string][]byte)} }

func fakeKey(gen int64, keyword string) string {
	return fmt.Sprintf("%d:%s", gen, strings.ToLower(keyword))
}

// current returns the key keyword is looked up under right now.
func (c *fakeCache) current(keyword string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fakeKey(c.gen, keyword)
}

func (c *fakeCache) Get(_ context.Context, keyword string, dst any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return 0, errors.New("connection refused")
	}
	raw, ok := c.entries[fakeKey(c.gen, keyword)]
	if !ok {
		return c.gen, redis.Nil
	}
	return c.gen, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(_ context.Context, keyword string, gen int64, results any) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fakeKey(gen, keyword)] = raw
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	return nil
}

type published struct {
	topic   string
	payload any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{topic: topic, payload: payload})
	return nil
}

// failingRepo fails every call it overrides.
type failingRepo struct {
	repositories.ItemRepository
}

var errStore = errors.New("store unavailable")

func (failingRepo) ListAvailable(context.Context) ([]models.Item, error) { return nil, errStore }
func (failingRepo) Exists(context.Context, int) (bool, error)            { return false, errStore }

func quietLogger() logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

func newTestService() (*ItemService, *fakeCache, *fakePublisher) {
	c := newFakeCache()
	p := &fakePublisher{}
	repo := memory.NewSeededItemRepository(memory.SeedItems()...)
	return NewItemService(repo, c, p, quietLogger()), c, p
}

func itemDraft(title, desc string, price *models.Number, seller string) models.ItemDraft {
	return models.ItemDraft{Title: title, Description: desc, Price: price, Seller: seller}
}

func TestItemService_ListAvailable(t *testing.T) {
	svc, _, _ := newTestService()
	items, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestItemService_Create(t *testing.T) {
	svc, c, p := newTestService()

	item, err := svc.Create(context.Background(), itemDraft("X", "Y", models.NewNumber(10), "Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 3 || item.IsSold || item.Price != 10 || len(item.Reviews) != 0 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if c.invalidated != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", c.invalidated)
	}
	if len(p.msgs) != 1 || p.msgs[0].topic != events.TopicItemListed {
		t.Fatalf("expected one %s event, got %+v", events.TopicItemListed, p.msgs)
	}
	evt, ok := p.msgs[0].payload.(events.ItemListedEvent)
	if !ok || evt.ItemID != 3 || evt.Version != events.SchemaVersion {
		t.Fatalf("unexpected event payload: %+v", p.msgs[0].payload)
	}
}

func TestItemService_CreateRejected(t *testing.T) {
	tests := []struct {
		name    string
		draft   models.ItemDraft
		wantErr error
	}{
		{"missing price", itemDraft("X", "Y", nil, "Z"), itemdomain.ErrMissingField},
		{"missing title", itemDraft("", "Y", models.NewNumber(1), "Z"), itemdomain.ErrMissingField},
		{"zero price", itemDraft("X", "Y", models.NewNumber(0), "Z"), itemdomain.ErrInvalidPrice},
		{"negative price", itemDraft("X", "Y", models.NewNumber(-5), "Z"), itemdomain.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, c, p := newTestService()
			_, err := svc.Create(context.Background(), tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			items, _ := svc.ListAvailable(context.Background())
			if len(items) != 2 {
				t.Fatalf("rejected create must not append, have %d items", len(items))
			}
			if c.invalidated != 0 || len(p.msgs) != 0 {
				t.Fatal("rejected create must not invalidate or publish")
			}
		})
	}
}

func TestItemService_Search(t *testing.T) {
	svc, c, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Search(ctx, ""); !errors.Is(err, itemdomain.ErrMissingKeyword) {
		t.Fatalf("expected ErrMissingKeyword, got %v", err)
	}

	items, err := svc.Search(ctx, "laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("unexpected results: %+v", items)
	}
	if _, ok := c.entries[c.current("laptop")]; !ok {
		t.Fatal("search results were not cached")
	}

	// A cached entry is served without touching the store.
	c.entries[c.current("laptop")] = []byte(`[{"id":99,"title":"cached","reviews":[]}]`)
	items, err = svc.Search(ctx, "LAPTOP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 99 {
		t.Fatalf("expected cached result, got %+v", items)
	}

	// A mutation drops the cached entry.
	if _, err := svc.Create(ctx, itemDraft("Gaming Laptop", "Fast", models.NewNumber(900), "Kim")); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err = svc.Search(ctx, "laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("expected fresh results after create, got %+v", items)
	}
}

// pausingRepo holds Search after the store has been read until release closes.
type pausingRepo struct {
	repositories.ItemRepository
	searched chan struct{}
	release  chan struct{}
	once     sync.Once
}

func (r *pausingRepo) Search(ctx context.Context, keyword string) ([]models.Item, error) {
	items, err := r.ItemRepository.Search(ctx, keyword)
	paused := false
	r.once.Do(func() { paused = true })
	if paused {
		close(r.searched)
		<-r.release
	}
	return items, err
}

func TestItemService_SearchOverlappingCreateIsNotCached(t *testing.T) {
	c := newFakeCache()
	repo := &pausingRepo{
		ItemRepository: memory.NewSeededItemRepository(memory.SeedItems()...),
		searched:       make(chan struct{}),
		release:        make(chan struct{}),
	}
	svc := NewItemService(repo, c, nil, quietLogger())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		items, err := svc.Search(ctx, "bike")
		if err == nil && len(items) != 0 {
			err = fmt.Errorf("search before create returned %d items", len(items))
		}
		done <- err
	}()

	<-repo.searched
	created, err := svc.Create(ctx, itemDraft("Used Bike", "Mountain bike", models.NewNumber(150), "Lee"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	close(repo.release)
	if err := <-done; err != nil {
		t.Fatalf("overlapping search: %v", err)
	}

	items, err := svc.Search(ctx, "bike")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected the created item, got %+v", items)
	}
}

func TestItemService_SearchWithSharedRedisSeesOnlyItsOwnStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(&config.Config{RedisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	ctx := context.Background()

	newService := func() *ItemService {
		repo := memory.NewSeededItemRepository(memory.SeedItems()...)
		return NewItemService(repo, cache.NewSearchCache(rc), nil, quietLogger())
	}

	before := newService()
	if _, err := before.Create(ctx, itemDraft("Used Bike", "Mountain bike", models.NewNumber(150), "Lee")); err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := before.Search(ctx, "bike")
	if err != nil || len(items) != 1 {
		t.Fatalf("search before restart: %+v, %v", items, err)
	}

	// A fresh store, as after a restart or on another replica.
	after := newService()
	items, err = after.Search(ctx, "bike")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("search returned items missing from the store: %+v", items)
	}
}

func TestItemService_SearchCacheFailureFallsThrough(t *testing.T) {
	svc, c, _ := newTestService()
	c.failReads = true

	items, err := svc.Search(context.Background(), "phone")
	if err != nil {
		t.Fatalf("cache failure must not fail the search: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("unexpected results: %+v", items)
	}
}

func TestItemService_AddReview(t *testing.T) {
	svc, c, p := newTestService()

	review, err := svc.AddReview(context.Background(), 1, models.ReviewDraft{User: "Dan", Rating: models.NewNumber(5), Comment: "Nice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ReviewID != 2 || review.Rating != 5 || len(review.Comments) != 0 {
		t.Fatalf("unexpected review: %+v", review)
	}
	if c.invalidated != 1 || len(p.msgs) != 1 || p.msgs[0].topic != events.TopicReviewAdded {
		t.Fatalf("expected invalidation and %s event, got %d / %+v", events.TopicReviewAdded, c.invalidated, p.msgs)
	}
}

func TestItemService_AddReviewOrdering(t *testing.T) {
	tests := []struct {
		name    string
		itemID  int
		draft   models.ReviewDraft
		wantErr error
	}{
		{"unknown item beats invalid body", 42, models.ReviewDraft{}, itemdomain.ErrItemNotFound},
		{"missing rating", 1, models.ReviewDraft{User: "Dan", Comment: "Nice"}, itemdomain.ErrMissingReviewField},
		{"rating too high", 1, models.ReviewDraft{User: "Dan", Rating: models.NewNumber(6), Comment: "Nice"}, itemdomain.ErrInvalidRating},
		{"rating too low", 1, models.ReviewDraft{User: "Dan", Rating: models.NewNumber(0), Comment: "Nice"}, itemdomain.ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, p := newTestService()
			if _, err := svc.AddReview(context.Background(), tt.itemID, tt.draft); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(p.msgs) != 0 {
				t.Fatal("failed review must not publish")
			}
		})
	}
}

func TestItemService_AddComment(t *testing.T) {
	svc, _, p := newTestService()
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, 1, 1, models.CommentDraft{User: "Dan", Text: "Price?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.User != "Dan" || comment.Text != "Price?" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
	if len(p.msgs) != 1 || p.msgs[0].topic != events.TopicCommentAdded {
		t.Fatalf("expected %s event, got %+v", events.TopicCommentAdded, p.msgs)
	}

	tests := []struct {
		name     string
		itemID   int
		reviewID int
		draft    models.CommentDraft
		wantErr  error
	}{
		{"item without reviews", 2, 1, models.CommentDraft{User: "Dan", Text: "?"}, itemdomain.ErrReviewNotFound},
		{"unknown item", 9, 1, models.CommentDraft{}, itemdomain.ErrItemNotFound},
		{"unknown review beats invalid body", 1, 7, models.CommentDraft{}, itemdomain.ErrReviewNotFound},
		{"missing text", 1, 1, models.CommentDraft{User: "Dan"}, itemdomain.ErrMissingCommentField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddComment(ctx, tt.itemID, tt.reviewID, tt.draft); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestItemService_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc, _, p := newTestService()
	p.err = errors.New("bus closed")

	if _, err := svc.Create(context.Background(), itemDraft("X", "Y", models.NewNumber(1), "Z")); err != nil {
		t.Fatalf("publish failure must not fail create: %v", err)
	}
}

func TestItemService_NilCacheAndPublisher(t *testing.T) {
	repo := memory.NewSeededItemRepository(memory.SeedItems()...)
	svc := NewItemService(repo, nil, nil, quietLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, itemDraft("X", "Y", models.NewNumber(1), "Z")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Search(ctx, "x"); err != nil {
		t.Fatalf("search: %v", err)
	}
}

func TestItemService_StoreErrorsAreWrapped(t *testing.T) {
	svc := NewItemService(failingRepo{}, nil, nil, quietLogger())

	if _, err := svc.ListAvailable(context.Background()); !errors.Is(err, errStore) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	_, err := svc.AddReview(context.Background(), 1, models.ReviewDraft{})
	if !errors.Is(err, errStore) || errors.Is(err, itemdomain.ErrValidation) {
		t.Fatalf("expected store error only, got %v", err)
	}
}
