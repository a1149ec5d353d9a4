// Package jobs defines the background tasks: snapshot refreshes after
// writes and pre-warming of print artifacts.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/arcadia-pos/arcadia-pos/internal/printdoc"
	"github.com/arcadia-pos/arcadia-pos/internal/statestore"
)

const (
	TypeSnapshotRefresh = "statestore:refresh"
	TypeArtifactWarm    = "printdoc:warm"
)

// SnapshotRefreshPayload names the collection to rewrite; empty means
// all of them.
type SnapshotRefreshPayload struct {
	Collection string `json:"collection,omitempty"`
}

// ArtifactWarmPayload identifies the document whose PDF should be
// rendered ahead of the first download.
type ArtifactWarmPayload struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// NewSnapshotRefreshTask builds a snapshot refresh task.
func NewSnapshotRefreshTask(collection string) (*asynq.Task, error) {
	payload, err := json.Marshal(SnapshotRefreshPayload{Collection: collection})
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal payload: %w", err)
	}
	return asynq.NewTask(TypeSnapshotRefresh, payload), nil
}

// NewArtifactWarmTask builds an artifact pre-warm task.
func NewArtifactWarmTask(kind, id string) (*asynq.Task, error) {
	payload, err := json.Marshal(ArtifactWarmPayload{Kind: kind, ID: id})
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal payload: %w", err)
	}
	return asynq.NewTask(TypeArtifactWarm, payload), nil
}

// Handlers executes tasks against the live services.
type Handlers struct {
	State   *statestore.Service
	Printer *printdoc.Service
	Logger  *slog.Logger
}

// HandleSnapshotRefresh rewrites one or all snapshots.
func (h *Handlers) HandleSnapshotRefresh(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("jobs: unmarshal payload: %w", err)
	}

	if payload.Collection == "" {
		return h.State.RefreshAll(ctx)
	}
	return h.State.Refresh(ctx, statestore.Collection(payload.Collection))
}

// HandleArtifactWarm renders a document PDF into the artifact cache so
// the first download is instant.
func (h *Handlers) HandleArtifactWarm(ctx context.Context, t *asynq.Task) error {
	var payload ArtifactWarmPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("jobs: unmarshal payload: %w", err)
	}

	var err error
	switch payload.Kind {
	case string(printdoc.KindQuotation):
		_, err = h.Printer.QuotationPDF(ctx, payload.ID)
	case string(printdoc.KindInvoice):
		_, err = h.Printer.InvoicePDF(ctx, payload.ID)
	default:
		return fmt.Errorf("jobs: unknown document kind %q", payload.Kind)
	}
	if err != nil {
		return fmt.Errorf("jobs: warm %s %s: %w", payload.Kind, payload.ID, err)
	}

	h.Logger.Info("artifact warmed", "kind", payload.Kind, "document_id", payload.ID)
	return nil
}

// Mux registers all handlers on a new serve mux.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSnapshotRefresh, h.HandleSnapshotRefresh)
	mux.HandleFunc(TypeArtifactWarm, h.HandleArtifactWarm)
	return mux
}
