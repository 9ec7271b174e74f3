package middleware

import (
	"log/slog"
	"net/http"

	"github.com/VernoB/TodoTask/internal/api/shared"
	"github.com/VernoB/TodoTask/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that assigns every request a trace
// ID and stores it in the request context, together with a trace-scoped
// logger that handlers retrieve via logger.FromContextOrDefault. An incoming
// X-Trace-ID header is honored to allow callers to propagate their own
// correlation IDs.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = shared.NewTraceID()
			}

			ctx := shared.SetTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log.With(slog.String("trace_id", traceID)))
			w.Header().Set("X-Trace-ID", traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
