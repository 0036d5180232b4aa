package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prestaforge/content-engine/config"
	"github.com/prestaforge/content-engine/internal/dispatch"
	"github.com/prestaforge/content-engine/internal/repository"
	"github.com/prestaforge/content-engine/internal/service/document"
	"github.com/prestaforge/content-engine/internal/service/generation"
	"github.com/prestaforge/content-engine/internal/service/voice"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
	"github.com/prestaforge/content-engine/pkg/storage"
	"github.com/prestaforge/content-engine/pkg/worker"
)

func main() {
	serverCfg := config.GetServerConfig()

	outputs := []string{"stdout"}
	if serverCfg.LogFile != "" {
		outputs = append(outputs, serverCfg.LogFile)
	}

	log, err := logger.NewLogger(
		logger.WithLevel(serverCfg.LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths(outputs),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dbCfg := config.GetDatabaseConfig()
	db, err := repository.NewSQLiteDB(dbCfg.File)
	if err != nil {
		log.Fatal("Failed to open database", logger.Error(err))
	}
	defer db.Close()

	if err := repository.RunMigrations(db, dbCfg.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations", logger.Error(err))
	}

	repos := repository.NewRepositories(db)

	store, err := storage.New(storage.Backend(serverCfg.StorageBackend), log)
	if err != nil {
		log.Fatal("Failed to initialize storage", logger.Error(err))
	}

	redisCfg := config.GetRedisConfig()
	q, err := queue.NewAsynqQueue(&queue.QueueConfig{
		RedisAddr:     redisCfg.Addr,
		RedisPassword: redisCfg.Password,
		RedisDB:       redisCfg.DB,
	})
	if err != nil {
		log.Fatal("Failed to initialize queue", logger.Error(err))
	}

	dispatcher := dispatch.NewDispatcher(log)
	docService := document.NewService(dispatcher, repos.Documents, repos.Analyses, q, store, log, nil)
	voiceService := voice.NewService(newTranscriber(), repos.VoiceInputs, repos.Prompts, q, store, log)
	genService := generation.NewService(repos.Prompts, repos.Generations, q, log)

	workerCfg, err := config.GetWorkerConfig()
	if err != nil {
		log.Fatal("Failed to load worker config", logger.Error(err))
	}

	jobWorker, err := worker.NewJobWorker(&worker.Config{
		RedisAddr:     redisCfg.Addr,
		RedisPassword: redisCfg.Password,
		RedisDB:       redisCfg.DB,
		Concurrency:   workerCfg.Concurrency,
		Queues:        workerCfg.Queues,
	}, docService, voiceService, genService, q, log)
	if err != nil {
		log.Fatal("Failed to create worker", logger.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := jobWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start worker", logger.Error(err))
	}

	// Periodic retention cleanup of stored objects.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := docService.CleanupStorage(ctx); err != nil {
					log.Error("Storage cleanup failed", logger.Error(err))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker...")
	jobWorker.Stop()
	log.Info("Worker stopped")
}

func newTranscriber() voice.Transcriber {
	cfg := config.GetTranscriberConfig()
	if cfg.Endpoint == "" {
		return voice.NewSimulatedTranscriber()
	}
	return voice.NewHTTPTranscriber(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
}
