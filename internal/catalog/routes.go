package catalog

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Routes mounts the catalog endpoints. Listing carries a rate limit
// because the search box queries on every keystroke.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(120, time.Minute))
		r.Get("/", h.List)
		r.Get("/by-code/{code}", h.GetByCode)
		r.Get("/{id}", h.Get)
	})

	r.Get("/export", h.ExportCSV)
	r.Post("/", h.Create)
	r.Post("/import", h.ImportCSV)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
