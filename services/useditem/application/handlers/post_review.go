package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

// CreateReviewRequest is the request body for POST /used-items/{id}/reviews.
type CreateReviewRequest struct {
	User    string         `json:"user"    example:"Alice"`
	Rating  *models.Number `json:"rating"  swaggertype:"number" example:"4"`
	Comment string         `json:"comment" example:"Great condition, fast delivery!"`
} // @name CreateReviewRequest

// PostReviewHandler handles POST /used-items/{id}/reviews requests.
type PostReviewHandler struct {
	svc *appsvcs.Services
}

// NewPostReviewHandler returns a PostReviewHandler backed by the given services.
func NewPostReviewHandler(svc *appsvcs.Services) *PostReviewHandler {
	return &PostReviewHandler{svc: svc}
}

// Execute appends a review to an item.
//
//	@Summary		Review item
//	@Description	Appends a review to the item. Rating must be between 1 and 5 inclusive.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Item ID"
//	@Param			request	body		CreateReviewRequest	true	"Review"
//	@Success		201		{object}	models.Review
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/used-items/{id}/reviews [post]
func (h *PostReviewHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeRequest[CreateReviewRequest](w, r)
	if !ok {
		return
	}

	review, err := h.svc.Item.AddReview(r.Context(), pathID(r, "id"), models.ReviewDraft{
		User:    req.User,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		errhttp.WriteError(w, r, h.svc.Log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, review)
}
