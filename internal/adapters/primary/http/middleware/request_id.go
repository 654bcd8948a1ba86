package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/euroblaze/ear-backend/internal/infrastructure/logging"
)

// RequestIDHeader is the HTTP header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, honoring an inbound
// X-Request-ID header and minting a UUID when there is none. The ID is
// echoed back on the response and stored in the request context under
// the logging package's key, so context-aware log records pick it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logging.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
