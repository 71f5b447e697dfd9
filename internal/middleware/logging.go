package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cassiomorais/connector-service/internal/request"
)

// RequestLogger logs each request once it completes. Header values outside
// unmasked are replaced with a placeholder.
func RequestLogger(logger zerolog.Logger, unmasked []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			evt := logger.Info()
			if ww.statusCode >= http.StatusInternalServerError {
				evt = logger.Error()
			}
			evt.
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.statusCode).
				Dur("latency", time.Since(start)).
				Interface("headers", request.MaskHTTPHeader(r.Header, unmasked)).
				Msg("request handled")
		})
	}
}
