package handlers

import (
	"net/http"

	"github.com/ghuser/usedmarket/pkg/errhttp"
	"github.com/ghuser/usedmarket/pkg/httpx"
	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	appsvcs "github.com/ghuser/usedmarket/services/useditem/application/services"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

// CreateCommentRequest is the request body for POST /used-items/{id}/reviews/{reviewId}/comments.
type CreateCommentRequest struct {
	User string `json:"user" example:"Bob"`
	Text string `json:"text" example:"Is it still available?"`
} // @name CreateCommentRequest

// PostCommentHandler handles POST /used-items/{id}/reviews/{reviewId}/comments requests.
type PostCommentHandler struct {
	svc *appsvcs.Services
}

// NewPostCommentHandler returns a PostCommentHandler backed by the given services.
func NewPostCommentHandler(svc *appsvcs.Services) *PostCommentHandler {
	return &PostCommentHandler{svc: svc}
}

// Execute appends a comment to a review.
//
//	@Summary		Comment on review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int						true	"Item ID"
//	@Param			reviewId	path		int						true	"Review ID"
//	@Param			request		body		CreateCommentRequest	true	"Comment"
//	@Success		201			{object}	models.Comment
//	@Failure		400			{object}	httpx.ErrorBody
//	@Failure		404			{object}	httpx.ErrorBody
//	@Router			/used-items/{id}/reviews/{reviewId}/comments [post]
func (h *PostCommentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeRequest[CreateCommentRequest](w, r)
	if !ok {
		return
	}

	comment, err := h.svc.Item.AddComment(r.Context(), pathID(r, "id"), pathID(r, "reviewId"), models.CommentDraft{
		User: req.User,
		Text: req.Text,
	})
	if err != nil {
		errhttp.WriteError(w, r, h.svc.Log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, comment)
}
