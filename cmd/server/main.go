package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/RenzoCostarelli/verduapp/internal/adapter/http"
	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/handler"
	memoryRepo "github.com/RenzoCostarelli/verduapp/internal/adapter/repository/memory"
	postgresRepo "github.com/RenzoCostarelli/verduapp/internal/adapter/repository/postgres"
	redisRepo "github.com/RenzoCostarelli/verduapp/internal/adapter/repository/redis"
	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/auth"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/config"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/logging"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/metrics"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/postgres"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/redis"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	redisclient "github.com/redis/go-redis/v9"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// The storage layer logs through slog; route it through the same
	// level and format configuration.
	slogLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(slogLogger.Logger)

	ctx := context.Background()

	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("failed to load timezone")
	}

	// Storage backend
	var (
		store usecase.EntryRepository
		idGen usecase.IDGenerator
		pool  *pgxpool.Pool
	)

	switch cfg.StorageBackend {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		pool, err = postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		store = postgresRepo.NewEntryRepository(pool)
		idGen = postgresRepo.NewULIDGenerator()
	case "memory":
		store = memoryRepo.NewEntryRepository()
		idGen = postgresRepo.NewULIDGenerator()
		log.Info().Msg("using in-memory storage")
	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	// Redis (optional)
	var (
		redisClient *redisclient.Client
		cache       usecase.Cache
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret)
	}

	// Metrics
	m := metrics.New()

	// Initialize use cases
	planner := usecase.NewQueryPlanner(store, clk, cfg.DefaultPageSize)
	entryUC := usecase.NewEntryUseCase(store, idGen, clk, cache)
	reportUC := usecase.NewReportUseCase(store, clk)
	exportUC := usecase.NewExportUseCase(store, clk)

	// Initialize handlers
	entryHandler := handler.NewEntryHandler(entryUC, planner, m)
	reportHandler := handler.NewReportHandler(reportUC, m)
	exportHandler := handler.NewExportHandler(exportUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:  entryHandler,
		ReportHandler: reportHandler,
		ExportHandler: exportHandler,
		HealthHandler: healthHandler,
		JWTManager:    jwtManager,
		AuthEnabled:   cfg.AuthEnabled,
		Logger:        log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("timezone", cfg.Timezone).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
