package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/cache"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/database"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/handlers"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/log"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/server"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/storage"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx := context.Background()

	shutdownTelemetry := telemetry.Setup(cfg.Telemetry, cfg.Environment, logger)

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	backend, err := storage.NewBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to init uploads storage")
	}

	publisher := events.NewPublisher(redisClient, cfg.Queue.Stream)

	handlerSet := handlers.NewHandlerSet(logger, cfg, dbPool, redisClient, backend, publisher)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, dbPool, redisClient, shutdownTelemetry)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, db *pgxpool.Pool, redisClient *redis.Client, shutdownTelemetry telemetry.ShutdownFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("telemetry shutdown error")
	}

	logger.Info().Msg("server exited cleanly")
}
