package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the request ID on responses (and accepts a
// caller-provided ID on requests, so upstream proxies can correlate).
const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// requestID assigns each request a UUID unless the caller supplied one,
// stores it in the context, and echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request's ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
