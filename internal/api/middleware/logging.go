package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/VernoB/TodoTask/internal/api/shared"
)

// RequestLogger returns middleware that logs one line per completed request
// with method, path, status and duration. The trace ID ties the line to any
// error responses the request produced.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("trace_id", shared.GetTraceID(r.Context())),
				slog.String("remote_addr", r.RemoteAddr))
		})
	}
}
