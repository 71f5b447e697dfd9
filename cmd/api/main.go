package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/cassiomorais/connector-service/internal/bootstrap"
	"github.com/cassiomorais/connector-service/internal/controller"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(bootstrap.Options{
		ServiceName:      "connector-service",
		MetricsNamespace: "connector_service",
		ConfigPath:       *configPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	router := controller.NewRouter(controller.RouterDeps{
		Authorizer:        app.Authorize,
		Connectors:        app.Connectors,
		DefaultConnector:  app.DefaultConnector(),
		Metrics:           app.Metrics,
		Gatherer:          app.Registry,
		Logger:            app.Logger,
		UnmaskedHeaders:   app.Config.UnmaskedHeaders.Keys,
		CORSConfig:        app.Config.Server.CORS,
		JWTSecret:         app.Config.Auth.JWTSecret,
		RequestsPerMinute: app.Config.RateLimit.RequestsPerMinute,
		RequestTimeout:    app.Config.Server.WriteTimeout,
	})

	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.Logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		app.Logger.Error().Err(err).Msg("Server exited with error")
		app.Close()
		os.Exit(1)
	}
	app.Logger.Info().Msg("Server exited")
}
