package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
	"github.com/cassiomorais/connector-service/internal/infrastructure/config"
	"github.com/cassiomorais/connector-service/internal/infrastructure/connectorapi"
	"github.com/cassiomorais/connector-service/internal/infrastructure/observability"
	"github.com/cassiomorais/connector-service/internal/service"
)

// Options select what New loads and where it logs.
type Options struct {
	ServiceName      string
	MetricsNamespace string
	// ConfigPath is an explicit config file; empty searches the default paths.
	ConfigPath string
	// LogOutput defaults to os.Stdout.
	LogOutput io.Writer
}

type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Metrics    *observability.Metrics
	Registry   *prometheus.Registry
	Connectors connector.Connectors
	Engine     *connectorapi.Engine
	Authorize  *service.AuthorizeService

	tracer *sdktrace.TracerProvider
}

func New(opts Options) (*App, error) {
	cfg, err := config.LoadFile(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig wires the service from an already validated configuration.
func NewWithConfig(cfg *config.Config, opts Options) (*App, error) {
	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger := observability.InitLogger(cfg.Observability.LogLevel, out)
	logger.Info().Str("instance", cfg.InstanceID).Msg("Starting " + opts.ServiceName)

	app := &App{Config: cfg, Logger: logger}

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(observability.TracerConfig{
			ServiceName:    opts.ServiceName,
			Exporter:       cfg.Observability.TraceExporter,
			JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			app.tracer = tp
			logger.Info().Str("exporter", cfg.Observability.TraceExporter).Msg("Tracing enabled")
		}
	}

	app.Registry = prometheus.NewRegistry()
	if cfg.Observability.EnableMetrics {
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		app.Metrics = observability.NewMetrics(opts.MetricsNamespace, app.Registry)
		logger.Info().Msg("Metrics initialized")
	}

	rootCA, err := cfg.Proxy.RootCA()
	if err != nil {
		return nil, err
	}
	client, err := connectorapi.NewClient(connectorapi.ClientConfig{
		ProxyURL:       cfg.Proxy.HTTPSURL,
		RootCAPEM:      rootCA,
		UseSystemRoots: cfg.Proxy.UseSystemRoots,
		Timeout:        cfg.Proxy.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build connector client: %w", err)
	}

	app.Connectors = cfg.ConnectorParams()
	app.Engine = connectorapi.NewEngine(client, logger, app.Metrics, cfg.UnmaskedHeaders.Keys)
	app.Authorize = service.NewAuthorizeService(app.Engine, app.Connectors, cfg.ConnectorCredentials(), logger, app.Metrics)

	for id, params := range app.Connectors {
		logger.Info().Str("connector", id.String()).Str("base_url", params.BaseURL).Msg("Connector configured")
	}

	return app, nil
}

// DefaultConnector is the connector used when a request names none.
func (a *App) DefaultConnector() connector.ConnectorEnum {
	id, err := connector.ParseConnectorEnum(a.Config.Server.DefaultConnector)
	if err != nil {
		return connector.Adyen
	}
	return id
}

func (a *App) Close() {
	if a.tracer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := observability.ShutdownTracer(ctx, a.tracer); err != nil {
		a.Logger.Warn().Err(err).Msg("Tracer shutdown failed")
	}
}
