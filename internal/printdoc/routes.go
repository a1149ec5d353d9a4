package printdoc

import "github.com/go-chi/chi/v5"

// Routes mounts the print endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/quotations/{id}", h.QuotationHTML)
	r.Get("/quotations/{id}/pdf", h.QuotationPDF)
	r.Get("/invoices/{id}", h.InvoiceHTML)
	r.Get("/invoices/{id}/pdf", h.InvoicePDF)
	return r
}
