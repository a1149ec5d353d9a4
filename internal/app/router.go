package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arcadia-pos/arcadia-pos/internal/auth"
	"github.com/arcadia-pos/arcadia-pos/internal/catalog"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
	"github.com/arcadia-pos/arcadia-pos/internal/printdoc"
	"github.com/arcadia-pos/arcadia-pos/internal/receiving"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/invoices"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/quotations"
	"github.com/arcadia-pos/arcadia-pos/internal/statestore"
	"github.com/arcadia-pos/arcadia-pos/jobs"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth       *auth.Service
	Catalog    *catalog.Service
	Quotations *quotations.Service
	Invoices   *invoices.Service
	Receiving  *receiving.Service
	Printer    *printdoc.Service
	State      *statestore.Service
	Enqueuer   *jobs.Enqueuer
}

// NewRouter assembles the HTTP surface.
func NewRouter(cfg Config, logger *slog.Logger, s Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(SecureHeaders(cfg))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/api/auth", auth.Routes(auth.NewHandler(s.Auth)))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(s.Auth))
		r.Use(MutationHooks(s.Enqueuer))

		r.Mount("/api/products", catalog.Routes(catalog.NewHandler(s.Catalog)))
		r.Mount("/api/quotations", quotations.Routes(quotations.NewHandler(s.Quotations)))
		r.Mount("/api/invoices", invoices.Routes(invoices.NewHandler(s.Invoices)))
		r.Mount("/api/suppliers", receiving.Routes(receiving.NewHandler(s.Receiving)))
		r.Mount("/api/print", printdoc.Routes(printdoc.NewHandler(s.Printer)))
		r.Mount("/api/state", statestore.Routes(statestore.NewHandler(s.State)))
	})

	return r
}
