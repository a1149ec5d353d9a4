package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/secure"

	"github.com/arcadia-pos/arcadia-pos/jobs"
)

// RequestLogger emits one structured line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// SecureHeaders applies the standard hardening headers.
func SecureHeaders(cfg Config) func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      !cfg.IsProduction(),
	})
	return sec.Handler
}

// MutationHooks queues background work after successful writes: every
// mutation triggers a snapshot refresh, and document edits pre-warm
// the print artifact.
func MutationHooks(enqueuer *jobs.Enqueuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			if enqueuer == nil || !isMutation(r.Method) || ww.Status() >= 400 {
				return
			}

			ctx := r.Context()
			enqueuer.SnapshotRefresh(ctx)

			if r.Method == http.MethodPut {
				if kind, id := documentTarget(r); id != "" {
					enqueuer.ArtifactWarm(ctx, kind, id)
				}
			}
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func documentTarget(r *http.Request) (kind, id string) {
	if rest, ok := strings.CutPrefix(r.URL.Path, "/api/quotations/"); ok {
		return "quotation", rest
	}
	if rest, ok := strings.CutPrefix(r.URL.Path, "/api/invoices/"); ok {
		return "invoice", rest
	}
	return "", ""
}
