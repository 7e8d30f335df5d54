package services

import (
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/services/useditem/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
	Log  logger.Logger
}

// New wires all used-item application services with infrastructure from the
// Application container. The store is seeded and lives as long as the process.
func New(a *app.Application) *Services {
	repo := memory.NewSeededItemRepository(memory.SeedItems()...)

	var searchCache SearchCache
	if a.Redis != nil {
		searchCache = cache.NewSearchCache(a.Redis)
	}

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	return &Services{
		Item: NewItemService(repo, searchCache, publisher, a.Logger),
		Log:  a.Logger,
	}
}
