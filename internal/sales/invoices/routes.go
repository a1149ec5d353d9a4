package invoices

import "github.com/go-chi/chi/v5"

// Routes mounts the invoice endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/stats", h.GetStats)
	r.Post("/", h.Create)
	r.Post("/from-quotation/{quotationID}", h.Convert)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
	return r
}
