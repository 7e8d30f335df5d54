package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
)

// SearchItemsHandler handles GET /used-items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute searches titles and descriptions.
//
//	@Summary		Search items
//	@Description	Case-insensitive substring match on title or description. Sold items are included.
//	@Tags			used-items
//	@Produce		json
//	@Param			keyword	query		string	true	"Search keyword"
//	@Success		200		{array}		models.Item
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/used-items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		errhttp.WriteError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
