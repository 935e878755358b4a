package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/events"
	"github.com/SscSPs/bank_backoffice/internal/handlers"
	"github.com/SscSPs/bank_backoffice/internal/jobs"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/SscSPs/bank_backoffice/internal/platform/config"
	"github.com/SscSPs/bank_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_backoffice/internal/repositories/memory"
	"github.com/SscSPs/bank_backoffice/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Bank Back Office API
// @version 1.0
// @description Ledger and account lifecycle engine for bank back office staff and customers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	publisher := openPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	serviceContainer := services.NewServiceContainer(cfg, repos, services.WithPublisher(publisher))

	scheduler := jobs.NewScheduler(serviceContainer.Reporting, logger, cfg.ReconcileSchedule)
	if err := scheduler.Start(); err != nil {
		logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", string(cfg.StorageDriver)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduled jobs did not finish before shutdown")
	}
	logger.Info("Server exited")
}

// openStore builds the repositories for the configured driver and returns a closer.
func openStore(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage")
		return memory.NewRepositoryProvider(memory.NewStore(cfg.LockTimeout)), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool, cfg.LockTimeout), func() { database.ClosePgxPool(dbPool) }, nil
}

// openPublisher connects to RabbitMQ, falling back to dropping events when no broker is reachable.
func openPublisher(cfg *config.Config, logger *slog.Logger) portssvc.EventPublisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{Logger: logger}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventsExchange)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, ledger events will not be published", slog.String("error", err.Error()))
		return events.NoopPublisher{Logger: logger}
	}
	logger.Info("Publishing ledger events", slog.String("exchange", cfg.EventsExchange))
	return publisher
}
