package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"reportTracker/internal/ai"
	"reportTracker/internal/config"
	"reportTracker/internal/handlers"
	"reportTracker/internal/logger"
	"reportTracker/internal/repository"
	"reportTracker/internal/repository/collection/inmemory"
	"reportTracker/internal/repository/collection/postgres"
	"reportTracker/internal/repository/collection/sqlite"
	"reportTracker/internal/service"
	"reportTracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(true)
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Development)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", err, zap.String("type", cfg.Repository.Type))
		os.Exit(1)
	}
	defer repo.Close()

	insight := ai.NewClient(
		cfg.Insight.Endpoint,
		cfg.Insight.Model,
		cfg.Insight.APIKey,
		cfg.Insight.Timeout,
	)

	svc := service.NewTaskService(repo, insight)
	handler := handlers.NewReportHandler(svc)
	router := handlers.NewRouter(handler, 100)

	if cfg.Worker.Enabled {
		overdueWorker := worker.NewOverdueWorker(repo, cfg.Worker.Interval)
		go overdueWorker.Start(ctx)
	}

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("Server started",
			zap.String("addr", server.Addr),
			zap.String("repository", cfg.Repository.Type))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", err)
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.CollectionRepository, error) {
	switch cfg.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, err
		}
		return storage, nil
	case "sqlite":
		return sqlite.New(cfg.Repository.SQLitePath)
	default:
		return inmemory.NewStorage(), nil
	}
}
