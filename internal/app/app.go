// Package app initializes and holds long-lived application services, acting as a dependency injection container.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/api"
	"github.com/JakeFAU/fxbilibili/internal/bilibili"
	"github.com/JakeFAU/fxbilibili/internal/config"
	"github.com/JakeFAU/fxbilibili/internal/detector"
	"github.com/JakeFAU/fxbilibili/internal/embed"
	"github.com/JakeFAU/fxbilibili/internal/id/uuid"
	"github.com/JakeFAU/fxbilibili/internal/telemetry"
)

// App holds the shared, long-lived services. It is built once at startup; the
// metadata client and its connection pool are shared by every request.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	client    *bilibili.Client
	resolver  *embed.Resolver
	apiServer *api.Server
	telemetry *telemetry.Provider
}

// NewApp creates and wires all services from cfg. opts are passed to the
// tracing provider.
func NewApp(
	ctx context.Context,
	cfg config.Config,
	version string,
	logger *zap.Logger,
	opts ...telemetry.Option,
) (*App, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	logger.Info("Initializing application services...",
		zap.String("addr", cfg.Addr()),
		zap.String("upstream", cfg.Upstream.Endpoint),
		zap.Duration("upstream_timeout", cfg.UpstreamTimeout()),
	)

	a := &App{cfg: cfg, logger: logger}

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.TracingEnabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		Exporter:       cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.telemetry = provider
	logger.Info("tracing configured",
		zap.Bool("enabled", provider.Enabled()),
		zap.String("exporter", cfg.Telemetry.Exporter),
		zap.String("endpoint", cfg.Telemetry.Endpoint),
	)

	a.client = bilibili.New(bilibili.Config{
		Endpoint:       cfg.Upstream.Endpoint,
		UserAgent:      cfg.Upstream.UserAgent,
		Timeout:        cfg.UpstreamTimeout(),
		TracerProvider: provider.TracerProvider(),
	}, logger.Named("bilibili"))
	a.resolver = embed.NewResolver(a.client, logger.Named("embed"))
	a.apiServer = api.NewServer(
		a.resolver,
		detector.NewBrowser(detector.DefaultMarker),
		uuid.New(),
		cfg,
		logger.Named("api"),
	)
	return a, nil
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// Handler returns the instrumented root handler. Health and scrape routes are
// not traced.
func (a *App) Handler() http.Handler {
	return otelhttp.NewHandler(a.apiServer.Handler(), a.cfg.Telemetry.ServiceName,
		otelhttp.WithTracerProvider(a.telemetry.TracerProvider()),
		otelhttp.WithFilter(shouldTrace),
	)
}

func shouldTrace(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return true
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server started", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-errCh
	a.logger.Info("shutdown complete")
	return nil
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Close flushes pending spans.
func (a *App) Close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", zap.Error(err))
	}
}
