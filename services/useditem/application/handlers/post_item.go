package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

// CreateItemRequest is the request body for POST /used-items/.
// Price accepts a JSON number or a numeric string.
type CreateItemRequest struct {
	Title       string         `json:"title"       example:"Used Laptop"`
	Description string         `json:"description" example:"A slightly used laptop in good condition."`
	Price       *models.Number `json:"price"       swaggertype:"number" example:"500"`
	Seller      string         `json:"seller"      example:"John Doe"`
} // @name CreateItemRequest

func (req CreateItemRequest) draft() models.ItemDraft {
	return models.ItemDraft{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Seller:      req.Seller,
	}
}

// PostItemHandler handles POST /used-items/ requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new listing.
//
//	@Summary		Create item
//	@Description	Lists a new used item. The item starts unsold with no reviews.
//	@Tags			used-items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	models.Item
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/used-items/ [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.draft())
	if err != nil {
		errhttp.WriteError(w, r, h.svc.Log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, item)
}
