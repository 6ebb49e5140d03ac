package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"docconnect/internal/authstate"
	"docconnect/internal/cache"
	"docconnect/internal/config"
	"docconnect/internal/database"
	"docconnect/internal/handlers"
	"docconnect/internal/jobs"
	"docconnect/internal/log"
	"docconnect/internal/models"
	"docconnect/internal/queue"
	"docconnect/internal/repository"
	"docconnect/internal/server"
	"docconnect/internal/service"
	"docconnect/internal/session"
	"docconnect/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx := context.Background()
	checks := map[string]handlers.HealthCheck{}

	var (
		users  repository.UserRepository
		dbPool *pgxpool.Pool
	)
	switch cfg.Repository.Driver {
	case "postgres":
		dbPool, err = database.Open(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open postgres")
		}
		pgUsers := repository.NewPostgresUserRepository(dbPool)
		if cfg.Repository.Seed {
			if err := pgUsers.Seed(ctx, repository.DemoUsers()); err != nil {
				logger.Fatal().Err(err).Msg("failed to seed demo users")
			}
		}
		users = pgUsers
		checks["postgres"] = dbPool.Ping
	default:
		var seed []models.User
		if cfg.Repository.Seed {
			seed = repository.DemoUsers()
		}
		users = repository.NewMemoryUserRepository(seed...)
	}

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		checks["redis"] = cache.Ping(redisClient)
	}

	var medium session.Medium
	switch cfg.Session.Medium {
	case "memory":
		medium = session.NewMemoryMedium()
	case "redis":
		medium = session.NewRedisMedium(redisClient, cfg.Session.TTL)
	}

	var mailer service.Mailer
	if cfg.Queue.Enabled {
		mailer = queue.NewProducer(redisClient, cfg.Queue.Stream, logger)
	}

	auth := service.NewAuthService(users, mailer, cfg.Mock, logger)
	registry := authstate.NewRegistry(auth, medium, logger)

	var avatars *service.AvatarService
	if cfg.Storage.Endpoint != "" {
		objectStore, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure avatar bucket failed")
		}
		avatars = service.NewAvatarService(objectStore, cfg.Storage.MaxAvatarSize, logger)
	} else {
		logger.Info().Msg("storage endpoint not set, avatar uploads disabled")
	}

	handlerSet, err := handlers.NewHandlerSet(handlers.Deps{
		Log:      logger,
		Config:   cfg,
		Auth:     auth,
		Avatars:  avatars,
		Registry: registry,
		Checks:   checks,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handlers")
	}
	httpServer, err := server.NewHTTPServer(cfg, logger, handlerSet)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build http server")
	}

	scheduler := jobs.NewScheduler(registry, cfg.Session.SweepSpec, cfg.Session.IdleTimeout, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := httpServer.Run(runCtx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
	}

	scheduler.Stop()
	if dbPool != nil {
		dbPool.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}
	logger.Info().Msg("server exited cleanly")
}
