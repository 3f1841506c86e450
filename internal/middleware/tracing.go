package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/campus-ledger/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

type requestIDKey struct{}

// RequestID tags every request with an id, reusing a well-formed incoming
// X-Request-ID. The id is echoed on the response and carried on the context
// logger, so unit-of-work logs from the ledger share it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// validRequestID keeps caller-supplied ids short and log-safe.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
