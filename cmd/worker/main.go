package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/cache"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/database"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/jobs"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/log"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/queue"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/storage"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	backend, err := storage.NewBackend(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to init uploads storage")
	}

	if err := cache.EnsureGroup(ctx, client, cfg.Queue.Stream, cfg.Queue.Group); err != nil {
		logger.Fatal().Err(err).Msg("consumer group setup failed")
	}

	scheduler := jobs.NewScheduler(events.NewPublisher(client, cfg.Queue.Stream), cfg.Jobs.FileAuditSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}
	defer scheduler.Stop()

	auditor := service.NewFileAuditor(repository.NewFileRepository(dbPool), backend, cfg.Uploads.PublicPrefix, logger)
	processor := tasks.NewProcessor(logger, auditor)
	consumer := queue.NewConsumer(
		client,
		cfg.Queue.Stream,
		cfg.Queue.Group,
		cfg.Queue.Consumer,
		cfg.Queue.ClaimInterval,
		logger,
		processor,
	)

	logger.Info().Str("stream", cfg.Queue.Stream).Str("consumer", cfg.Queue.Consumer).Msg("worker started")

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped unexpectedly")
	}

	logger.Info().Msg("worker exited")
}
