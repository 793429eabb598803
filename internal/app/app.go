package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enrolcli/internal/config"
	apierrors "enrolcli/internal/errors"
	"enrolcli/internal/infrastructure"
	custommiddleware "enrolcli/internal/middleware"
	"enrolcli/internal/services"
	transporthttp "enrolcli/internal/transport/http"
)

// AppName identifies the server in startup logs.
const AppName = "enrolweb"

// Application wires configuration, logging, services, handlers and the
// HTTP server into a runnable unit.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	enrolmentService *services.EnrolmentService
	healthService    *services.HealthService
}

// NewApplication builds the application from configuration and wires all
// routes. It does not start listening; call Run for that.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &Application{
		Config:           cfg,
		Logger:           logger,
		enrolmentService: services.NewEnrolmentService(logger),
		healthService:    services.NewHealthService(cfg.Data.InputPath),
	}

	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

func (a *Application) router() chi.Router {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))

	limiter := custommiddleware.NewRateLimiter(
		a.Config.Server.RateLimitRPS,
		a.Config.Server.RateLimitBurst,
		a.Logger,
	)
	r.Use(limiter.Handler)

	enrolmentHandler := transporthttp.NewEnrolmentHandler(
		a.enrolmentService,
		a.Config.Data.InputPath,
		a.Config.Chart.Title,
		a.Config.Chart.LowBound(),
		a.Config.Chart.HighBound(),
		a.Logger,
	)
	healthHandler := transporthttp.NewHealthHandler(a.healthService, a.Logger)

	r.Get("/", transporthttp.ServeDashboard(
		a.Config.Chart.Title,
		a.Config.Chart.LowBound(),
		a.Config.Chart.HighBound(),
	))
	r.Mount("/api/enrolment", enrolmentHandler.Routes())
	r.Mount("/api/health", healthHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		render.Render(w, req, apierrors.ErrNotFound)
	})

	return r
}

// Start begins serving in the background; a listen failure cancels ctx.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", services.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("input", a.Config.Data.InputPath))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop shuts the server down gracefully within the configured timeout.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()
	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.Start(ctx, cancel)

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
