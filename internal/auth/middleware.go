package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

type contextKey struct{}

// RequireSession rejects requests without a valid bearer token.
func RequireSession(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := service.Verify(r.Context(), bearerToken(r))
			if err != nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated operator's email.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(contextKey{}).(string)
	return email
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
