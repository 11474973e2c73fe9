package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"schoolform-data/internal/config"
	"schoolform-data/internal/database"
	httpapi "schoolform-data/internal/http"
	"schoolform-data/internal/logging"
	"schoolform-data/internal/repository"
	"schoolform-data/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "schoolform-api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("db", cfg.Database.Database))

	repo := repository.NewPostgresProfilesRepo(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	router := httpapi.NewRouter(logger)
	router.RegisterSinkRoutes(httpapi.NewSinkHandler(repo, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		logger.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = db.Close()
}
