package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/pkg/logger"
)

// CorrelationID attaches an x-correlation-id to every request, reusing the
// caller's when present so gateway, caller and platform logs all share one
// identifier. The id is stored in context for upstream passthrough and
// echoed on the response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("x-correlation-id")
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		ctx := internal.ContextWithCorrelationID(r.Context(), correlationID)
		ctx = logger.With(ctx, "correlation_id", correlationID)

		w.Header().Set("x-correlation-id", correlationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
