package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/services/useditem/application/handlers"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
)

// UsedItemRoutes registers used-item endpoints on the provided chi router.
func UsedItemRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a))
}

// Mount registers the used-item endpoints backed by an already wired container.
func Mount(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/used-items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
		r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
		r.Route("/{id}/reviews", func(r chi.Router) {
			r.Post("/", handlers.NewPostReviewHandler(svcs).Execute)
			r.Post("/{reviewId}/comments", handlers.NewPostCommentHandler(svcs).Execute)
		})
	})
}
