// Package errhttp maps domain errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain error category.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/usedmarket/pkg/httpx"
	"github.com/ghuser/usedmarket/pkg/logger"
	itemdomain "github.com/ghuser/usedmarket/services/useditem/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.As and errors.Is so wrapped domain errors are matched correctly.
// Unrecognized errors are logged with the request context and answered with
// a generic 500 body; their text never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var ve *itemdomain.ValidationError
	if errors.As(err, &ve) {
		httpx.JSON(w, http.StatusBadRequest, httpx.ErrorBody{Error: ve.Reason, Fields: ve.Fields})
		return
	}

	var nf *itemdomain.NotFoundError
	if errors.As(err, &nf) {
		httpx.JSONError(w, http.StatusNotFound, nf.Error())
		return
	}

	status := mapErrorToStatus(err)
	if status != http.StatusInternalServerError {
		httpx.JSONError(w, status, err.Error())
		return
	}

	if log != nil {
		log.ErrorContext(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}
	httpx.JSONError(w, status, httpx.InternalErrorMessage)
}

// mapErrorToStatus covers the bare category sentinels.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, itemdomain.ErrNotFound):
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}
