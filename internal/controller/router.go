package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/infrastructure/config"
	"github.com/cassiomorais/connector-service/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/connector-service/internal/middleware"
)

type RouterDeps struct {
	Authorizer       Authorizer
	Connectors       connector.Connectors
	DefaultConnector connector.ConnectorEnum
	Metrics          *observability.Metrics
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer          prometheus.Gatherer
	Logger            zerolog.Logger
	UnmaskedHeaders   []string
	CORSConfig        config.CORSConfig
	JWTSecret         string
	RequestsPerMinute int
	RequestTimeout    time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	requestTimeout := deps.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(customMW.RequestLogger(deps.Logger, deps.UnmaskedHeaders))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.CORSConfig.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			customMW.ConnectorHeader, HeaderAuthType, HeaderAPIKey, HeaderKey1, HeaderMerchantID,
		},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Connectors)
	authorizeH := NewAuthorizeController(deps.Authorizer, deps.Connectors, deps.DefaultConnector)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RequestsPerMinute > 0 {
			r.Use(customMW.RateLimit(deps.RequestsPerMinute))
		}
		if deps.JWTSecret != "" {
			r.Use(customMW.RequireAuth(deps.JWTSecret))
		}

		r.Get("/connectors", authorizeH.ListConnectors)
		r.Post("/authorize", authorizeH.Authorize)
		r.Post("/connectors/{name}/authorize", authorizeH.AuthorizeWith)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found", Code: "not_found"})
	})

	return r
}
