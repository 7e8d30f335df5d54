package httpx

import (
	"encoding/json"
	"net/http"
)

// InternalErrorMessage is the only error text a client sees for a 5xx.
const InternalErrorMessage = "internal server error"

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically. Encoding errors are
// silently discarded, so use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON shape of every error response.
// Fields is set only when specific request fields were rejected.
type ErrorBody struct {
	Error  string   `json:"error" example:"missing field"`
	Fields []string `json:"fields,omitempty" example:"title,seller"`
} // @name ErrorBody

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}
