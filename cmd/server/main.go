package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/api/handlers"
	"github.com/prestaforge/content-engine/api/routes"
	"github.com/prestaforge/content-engine/config"
	"github.com/prestaforge/content-engine/internal/dispatch"
	"github.com/prestaforge/content-engine/internal/repository"
	"github.com/prestaforge/content-engine/internal/service/document"
	"github.com/prestaforge/content-engine/internal/service/generation"
	"github.com/prestaforge/content-engine/internal/service/voice"
	"github.com/prestaforge/content-engine/pkg/logger"
	"github.com/prestaforge/content-engine/pkg/queue"
	"github.com/prestaforge/content-engine/pkg/storage"
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

	h := handlers.NewHandlers(docService, voiceService, genService, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("Server starting", logger.String("addr", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}

func newTranscriber() voice.Transcriber {
	cfg := config.GetTranscriberConfig()
	if cfg.Endpoint == "" {
		return voice.NewSimulatedTranscriber()
	}
	return voice.NewHTTPTranscriber(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
}
