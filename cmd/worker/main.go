package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/venueo/media-pipeline-go/internal/config"
	workerHandler "github.com/venueo/media-pipeline-go/internal/handler/worker"
	"github.com/venueo/media-pipeline-go/internal/logger"
	"github.com/venueo/media-pipeline-go/internal/moderation"
	"github.com/venueo/media-pipeline-go/internal/outcome"
	"github.com/venueo/media-pipeline-go/internal/port"
	"github.com/venueo/media-pipeline-go/internal/storage"
	"github.com/venueo/media-pipeline-go/internal/task"
	"github.com/venueo/media-pipeline-go/internal/transcoder"
	ingestSvc "github.com/venueo/media-pipeline-go/internal/usecase/ingest"
)

func main() {
	ctx := context.Background()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	strg := initStorage(ctx, cfg)
	initBucket(ctx, strg, cfg.MediaBucket)

	mod, err := moderation.NewRekognitionModerator(ctx, cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize moderation client: %v", err)
		os.Exit(1)
	}

	rec := outcome.NewRecorder(cfg.RedisAddr, cfg.RedisPassword)

	ingestCfg := ingestSvc.DefaultConfig(cfg.MediaBucket)
	ingestCfg.IncomingPrefix = cfg.IncomingPrefix
	ingestCfg.PublishedPrefix = cfg.PublishedPrefix
	ingestCfg.MinConfidence = cfg.ModerationMinConfidence
	ingestCfg.ModerationTimeout = cfg.ModerationTimeout
	ingestCfg.MaxPublishBytes = cfg.MaxPublishBytes

	svc := ingestSvc.NewUploadIngester(strg, mod, transcoder.NewWebPTranscoder(), rec, ingestCfg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeIngestUploads, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseIngestUploadsPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.IngestUploadsHandler(ctx, p, svc)
	})

	runWorker(ctx, mux, cfg)
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.WorkerConcurrency})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish in-flight pipelines
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()
	<-shutdownCtx.Done()

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
