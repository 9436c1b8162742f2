// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/noticeboard/internal/app/system/httpjson"
)

// Handler answers requests that match no route, in the same
// {"detail": "..."} shape the API uses for its own failures.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func write(w http.ResponseWriter, status int) {
	httpjson.Detail(w, status, http.StatusText(status))
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusNotFound)
}

// MethodNotAllowed is the router's fallback for a known path with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusMethodNotAllowed)
}
