// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Api is the entry point for the Yomira media-asset management API server.

The server provides a high-performance backend for a hierarchical tag
forest, a two-phase media-replica ingestion pipeline, and keyset-paginated
media queries.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	SERVER_PORT     Port to listen on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yomira/mediacore/internal/api"
	"github.com/yomira/mediacore/internal/core/medium"
	"github.com/yomira/mediacore/internal/core/source"
	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/core/tagtype"
	"github.com/yomira/mediacore/internal/platform/config"
	"github.com/yomira/mediacore/internal/platform/constants"
	"github.com/yomira/mediacore/internal/platform/imageproc"
	"github.com/yomira/mediacore/internal/platform/migration"
	"github.com/yomira/mediacore/internal/platform/objectstore"
	pgstore "github.com/yomira/mediacore/internal/platform/postgres"
	redisstore "github.com/yomira/mediacore/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", "yomira"))
	slog.SetDefault(log)

	log.Info("[Yomira] service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "yomira"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 6. Object Repository
	objects, err := newObjectRepository(cfg)
	if err != nil {
		return fmt.Errorf("initialize object repository: %w", err)
	}

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 8. Tag, TagType & Source Wiring
	tagRepo := tag.NewPostgresRepository(pool)
	tagSvc := tag.NewService(tagRepo, log)
	tagHdl := tag.NewHandler(tagSvc)

	tagTypeRepo := tagtype.NewPostgresRepository(pool)
	tagTypeSvc := tagtype.NewService(tagTypeRepo)
	tagTypeHdl := tagtype.NewHandler(tagTypeSvc)

	externalServiceRepo := source.NewExternalServicePostgresRepository(pool)
	externalServiceSvc := source.NewExternalServiceService(externalServiceRepo)
	externalServiceHdl := source.NewExternalServiceHandler(externalServiceSvc)

	sourceRepo := source.NewSourcePostgresRepository(pool)
	sourceSvc := source.NewSourceService(sourceRepo, externalServiceRepo)
	sourceHdl := source.NewSourceHandler(sourceSvc)

	// # 9. Medium Wiring (Media, Replica, Thumbnail)
	mediaRepo := medium.NewMediaPostgresRepository(pool, tagRepo, tagTypeRepo, sourceRepo)
	replicaRepo := medium.NewReplicaPostgresRepository(pool)
	thumbnailRepo := medium.NewThumbnailPostgresRepository(pool)
	processor := imageproc.NewImageProcessor()
	thumbnailURL := func(id string) string { return cfg.ThumbnailURLBase + id }

	mediumSvc := medium.NewService(mediaRepo, replicaRepo, thumbnailRepo, objects, processor, thumbnailURL, log)
	mediumHdl := medium.NewHandler(mediumSvc)
	replicaHdl := medium.NewReplicaHandler(mediumSvc)

	// # 10. API Assembly
	handlers := api.Handlers{
		Liveness:        liveness,
		Readiness:       readiness,
		Tag:             tagHdl,
		TagType:         tagTypeHdl,
		ExternalService: externalServiceHdl,
		Source:          sourceHdl,
		Medium:          mediumHdl,
		Replica:         replicaHdl,
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, handlers)

	// # 11. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("yomira_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}

// newObjectRepository selects the object repository backing replica
// storage per cfg.ObjectStoreScheme — "file" for local disk, "s3" for
// an S3-compatible bucket (e.g. Cloudflare R2).
func newObjectRepository(cfg *config.Config) (objectstore.Repository, error) {
	switch cfg.ObjectStoreScheme {
	case "s3":
		return objectstore.NewS3Repository(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseTLS)
	default:
		return objectstore.NewFileRepository(cfg.ObjectStoreRoot), nil
	}
}
