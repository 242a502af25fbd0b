// internal/app/features/assets/routes.go
package assets

import "github.com/go-chi/chi/v5"

// Routes mounts the asset endpoints under whatever base path the caller
// chooses (typically "/assets" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/tag/{tag}", h.HandleGetByTag)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
