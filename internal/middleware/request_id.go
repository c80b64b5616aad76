package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"portableworkout-web/internal/observability"
)

// RequestID tags every request with a UUID, echoed in the X-Request-Id
// response header and attached to every log line via the request context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-Id", id)
			ctx := observability.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
