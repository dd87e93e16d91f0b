// Package app wires configuration, logging, the analysis dataset and the
// HTTP transport into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"retailpulse/internal/config"
	"retailpulse/internal/dataset"
	"retailpulse/internal/infrastructure"
	"retailpulse/internal/middleware"
	handlers "retailpulse/internal/transport/http"
)

const Version = "1.0.0"

// Application holds the assembled server and its dependencies.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Dataset  *dataset.Dataset
	Router   *chi.Mux
	Server   *http.Server
	Registry *prometheus.Registry
}

// New loads configuration, builds the dataset from the configured workbook
// and assembles the router. The dataset is loaded once at startup; every
// report endpoint reads from the same immutable snapshot.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("workbook", cfg.Data.WorkbookPath))

	raw, err := dataset.LoadWorkbook(cfg.Data.WorkbookPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}
	ds, stats, err := dataset.Clean(raw, logger)
	if err != nil {
		return nil, fmt.Errorf("clean transactions: %w", err)
	}
	logger.Info("dataset ready",
		slog.Int("rows", ds.Len()),
		slog.Int("dropped", stats.Dropped()),
		slog.String("start", ds.Start().Format("2006-01-02")),
		slog.String("end", ds.End().Format("2006-01-02")))

	app := &Application{
		Config:   cfg,
		Logger:   logger,
		Dataset:  ds,
		Registry: prometheus.NewRegistry(),
	}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.NewMetrics(a.Registry).Handler)
	r.Use(middleware.NewRateLimiter(
		a.Config.Server.RateLimitRPS,
		a.Config.Server.RateLimitBurst,
		a.Logger,
	).Handler)
	r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

	reportHandler := handlers.NewReportHandler(
		a.Dataset,
		a.Config.Forecast.DefaultPeriods,
		a.Config.Forecast.MaxPeriods,
		a.Logger,
	)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/reports", reportHandler.Routes())
		r.Mount("/health", handlers.NewHealthHandler(a.Dataset).Routes())
	})

	// Metrics stay outside the rate limiter so scrapes never get shed.
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves HTTP until the context is cancelled or an interrupt arrives,
// then drains in-flight requests within the shutdown timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down", slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Logger.Info("server stopped", slog.Time("at", time.Now()))
	return err
}
