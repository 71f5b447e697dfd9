package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a server span per request, named after the matched chi route
// and tagged with the requested connector.
func Tracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		tagged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := trace.SpanFromContext(r.Context())
			if name := r.Header.Get(ConnectorHeader); name != "" {
				span.SetAttributes(attribute.String("connector.requested", name))
			}
			next.ServeHTTP(w, r)
			// chi fills the route pattern only once routing has run.
			span.SetName(r.Method + " " + routePattern(r))
		})

		return otelhttp.NewHandler(tagged, "connector-service",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + routePattern(r)
			}),
		)
	}
}

// routePattern is the matched chi pattern, or the raw path outside chi.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}
