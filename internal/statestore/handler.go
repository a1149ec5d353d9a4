package statestore

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

// Handler serves the state snapshot.
type Handler struct {
	service *Service
}

// NewHandler builds a statestore handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the full snapshot, read by clients once at startup.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

// GetCollection returns one collection's snapshot. Collections that
// were never written (or do not exist) read as not found.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	ok, err := h.service.Load(r.Context(), Collection(chi.URLParam(r, "collection")), &raw)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, raw)
}

// Refresh forces a rewrite of every collection.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RefreshAll(r.Context()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Routes mounts the snapshot endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Get("/{collection}", h.GetCollection)
	r.Post("/refresh", h.Refresh)
	return r
}
