package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"shopsight/internal/config"
	"shopsight/internal/dataset"
	apperrors "shopsight/internal/errors"
	"shopsight/internal/infrastructure"
	"shopsight/internal/middleware"
	"shopsight/internal/services"
	transporthttp "shopsight/internal/transport/http"
)

// Version is the build version, overridable at link time with
// -ldflags "-X shopsight/internal/app.Version=...".
var Version = "dev"

// Application wires configuration, the dataset, services and the HTTP
// server together.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Router  chi.Router
	Server  *http.Server

	Store            *dataset.Store
	DashboardService *services.DashboardService
	InsightsService  *services.InsightsService
}

// NewApplication builds the full application. The dataset is loaded here,
// before the server exists, so a missing or unreadable source file fails
// startup instead of surfacing per-request.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store := dataset.NewStore(logger)
	table, err := store.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, apperrors.NewDatasetError("failed to load dataset", err).
			WithContext("path", cfg.Dataset.Path)
	}
	stats, _ := store.Stats(cfg.Dataset.Path)

	metrics := infrastructure.NewMetrics()
	metrics.DatasetRows.Set(float64(table.Len()))

	logger.Info("dataset loaded",
		slog.String("path", cfg.Dataset.Path),
		slog.Int("rows", stats.Rows),
		slog.Int("columns", stats.Columns),
		slog.Int("malformed_amounts", stats.MalformedAmounts),
	)

	app := &Application{
		Config:           cfg,
		Logger:           logger,
		Metrics:          metrics,
		Store:            store,
		DashboardService: services.NewDashboardService(table, stats, cfg.Dataset, logger),
		InsightsService:  services.NewInsightsService(table, logger),
	}

	app.Router = app.buildRouter(stats)
	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// buildRouter assembles the middleware chain and mounts the handlers.
// The metrics endpoint sits outside the API middleware group so scrapes
// are never rate limited or logged per request.
func (app *Application) buildRouter(stats dataset.LoadStats) chi.Router {
	cfg := app.Config
	errorHandler := apperrors.NewErrorHandler(app.Logger, false)

	r := chi.NewRouter()
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Get("/metrics", app.Metrics.Handler().ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Metrics(app.Metrics))
		r.Use(middleware.StructuredLogger(app.Logger))
		r.Use(middleware.Recoverer(app.Logger))
		r.Use(middleware.SecurityHeaders)

		if cfg.Security.EnableCORS {
			r.Use(middleware.CORS(middleware.CORSConfig{
				AllowedOrigins: cfg.Security.AllowedOrigins,
				Logger:         app.Logger,
			}))
		}
		if cfg.Security.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, app.Logger)
			r.Use(limiter.Handler)
		}
		r.Use(middleware.Timeout(cfg.Server.WriteTimeout, app.Logger))

		dashboard := transporthttp.NewDashboardHandler(app.DashboardService, errorHandler, app.Logger)
		insights := transporthttp.NewInsightsHandler(app.InsightsService, errorHandler, app.Logger)
		health := transporthttp.NewHealthHandler(Version, cfg.Dataset.Path, stats, app.Logger)

		r.Route("/api", func(r chi.Router) {
			r.Mount("/dashboard", dashboard.Routes())
			r.Mount("/insights", insights.Routes())
			r.Mount("/health", health.Routes())
		})
	})

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails, then shuts down gracefully within the configured
// timeout.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info("server starting",
			slog.String("addr", app.Server.Addr),
			slog.String("version", Version),
		)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		app.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	return err
}
