package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// pathID reads an integer URL parameter. Anything that is not a base-10
// integer reads as 0, which no stored item or review ever uses, so the
// lookup that follows reports "not found".
func pathID(r *http.Request, name string) int {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0
	}
	return id
}
