// Package main is the entry point for the project board. It wires all
// dependencies using samber/do v2, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/project-board/internal/adapters/http"
	"github.com/jsamuelsen11/project-board/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/project-board/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/project-board/internal/adapters/ws"

	"github.com/jsamuelsen11/project-board/internal/adapters/clients/webhook"
	"github.com/jsamuelsen11/project-board/internal/app"
	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/platform/health"
	"github.com/jsamuelsen11/project-board/internal/platform/httpclient"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
	"github.com/jsamuelsen11/project-board/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/page"
	"github.com/jsamuelsen11/project-board/internal/ui/widgets"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	otelShutdownTimeout = 5 * time.Second
	pageTitle           = "Project Board"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile, config.WithEnvFiles(".env"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
		slog.String("service", cfg.Telemetry.ServiceName),
		slog.String("profile", profile),
	)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// The embedded page must mount cleanly before anything is served.
	if err := checkPage(); err != nil {
		return err
	}

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	hub := do.MustInvoke[*ws.Hub](injector)
	registry.Register(hub)

	notifier := do.MustInvoke[*app.Notifier](injector)
	for _, client := range do.MustInvoke[[]ports.WebhookClient](injector) {
		registry.Register(client)
	}
	if err := notifier.Start(ctx); err != nil {
		return fmt.Errorf("starting notifier: %w", err)
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
		serverErr <- nil
	}

	shutdown(cfg, logger, server, hub, notifier, serverErr)

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("shutdown complete")
	return nil
}

// shutdown drains HTTP requests, closes live sessions (hijacked connections
// are invisible to http.Server.Shutdown) and flushes pending notifications,
// all within the configured shutdown timeout.
func shutdown(
	cfg *config.Config,
	logger *slog.Logger,
	server *adapthttp.Server,
	hub *ws.Hub,
	notifier *app.Notifier,
	serverErr <-chan error,
) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	if err := hub.Shutdown(ctx); err != nil {
		logger.Error("session shutdown error", slog.Any("error", err))
	}
	if err := notifier.Stop(ctx); err != nil {
		logger.Error("notifier shutdown error", slog.Any("error", err))
	}
	if n := notifier.Dropped(); n > 0 {
		logger.Warn("board changes dropped before delivery", slog.Uint64("count", n))
	}
}

func checkPage() error {
	doc, err := page.NewDocument()
	if err != nil {
		return fmt.Errorf("loading page: %w", err)
	}
	if _, err := widgets.NewBoard(doc, app.NewProjectStore(nil, nil), nil); err != nil {
		return fmt.Errorf("mounting page: %w", err)
	}
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (ports.ProjectStore, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewProjectStore(logging.Component(logger, "store"), metrics), nil
	})

	do.Provide(injector, func(i do.Injector) ([]ports.WebhookClient, error) {
		if !cfg.Webhook.Enabled {
			return nil, nil
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		clients := make([]ports.WebhookClient, 0, len(cfg.Webhook.Targets))
		for _, target := range cfg.Webhook.Targets {
			clientLogger := logging.Component(logger, "webhook").With(slog.String("target", target.Name))
			doer := httpclient.New(cfg.Webhook.Client, target.Name, metrics, clientLogger)
			clients = append(clients, webhook.New(target, doer, clientLogger))
		}
		return clients, nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Notifier, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		clients := do.MustInvoke[[]ports.WebhookClient](i)
		return app.NewNotifier(store, clients, app.NotifierOptions{
			Workers:         cfg.Webhook.Workers,
			QueueSize:       cfg.Webhook.QueueSize,
			DeliveryTimeout: cfg.Webhook.Client.Timeout,
		}, logging.Component(logger, "notifier")), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*ws.Hub, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return ws.NewHub(store, cfg.Session, metrics, logging.Component(logger, "hub")), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PageHandler, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		return handlers.NewPageHandler(store, page.Props{
			Title:        pageTitle,
			WSPath:       adapthttp.LivePath,
			StaticPrefix: adapthttp.StaticPrefix,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		return handlers.NewProjectHandler(store), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		pageH := do.MustInvoke[*handlers.PageHandler](i)
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		hub := do.MustInvoke[*ws.Hub](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(pageH, projH, healthH, hub, cfg.Server.RequestTimeout,
			middleware.Standard(logger, metrics),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
