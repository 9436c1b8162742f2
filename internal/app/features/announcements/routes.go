// internal/app/features/announcements/routes.go
package announcements

import "github.com/go-chi/chi/v5"

// Routes returns the announcements router, mounted at /announcements.
// Only /active is public; the rest take a teacher_username.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/active", h.ListActive)

	r.Group(func(pr chi.Router) {
		pr.Use(h.throttle)
		pr.Get("/", h.List)
		pr.Post("/", h.Create)
		pr.Put("/{id}", h.Update)
		pr.Delete("/{id}", h.Delete)
	})
	return r
}
