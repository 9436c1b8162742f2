// internal/app/features/auditlog/routes.go
package auditlog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under the path where this router is
// mounted ("/audit" from bootstrap). requireTeacher guards every route.
func Routes(h *Handler, requireTeacher func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireTeacher)
	r.Get("/", h.ServeList)
	return r
}
