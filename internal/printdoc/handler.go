package printdoc

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

// Handler serves print previews and download artifacts.
type Handler struct {
	service *Service
}

// NewHandler builds a printdoc handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) QuotationHTML(w http.ResponseWriter, r *http.Request) {
	html, err := h.service.QuotationHTML(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	writeHTML(w, html)
}

func (h *Handler) InvoiceHTML(w http.ResponseWriter, r *http.Request) {
	html, err := h.service.InvoiceHTML(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	writeHTML(w, html)
}

func (h *Handler) QuotationPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.service.QuotationPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	writePDF(w, "quotation.pdf", pdf)
}

func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.service.InvoicePDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	writePDF(w, "invoice.pdf", pdf)
}

func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
