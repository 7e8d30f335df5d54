package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
)

// ListItemsHandler handles GET /used-items/ requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists every item that has not been sold.
//
//	@Summary		List available items
//	@Description	Returns every unsold item in listing order, with reviews and comments
//	@Tags			used-items
//	@Produce		json
//	@Success		200	{array}		models.Item
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/used-items/ [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.ListAvailable(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, h.svc.Log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}
