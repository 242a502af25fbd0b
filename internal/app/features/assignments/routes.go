// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

// Routes mounts the assignment endpoints under whatever base path the caller
// chooses (typically "/assignments" from bootstrap).
//
// The fixed-path routes (summary, search, export, returned, filter/status)
// are registered before the {id} routes so chi never treats them as ids.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)

	r.Get("/summary", h.HandleSummary)
	r.Get("/search", h.HandleSearch)
	r.Get("/export", h.HandleExport)
	r.Get("/returned", h.HandleReturned)
	r.Get("/filter/status", h.HandleFilterByStatus)

	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Post("/{id}/return", h.HandleReturn)

	return r
}
