package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"schoolform-data/internal/config"
	httpapi "schoolform-data/internal/http"
	"schoolform-data/internal/location"
	"schoolform-data/internal/logging"
	"schoolform-data/internal/refdata"
	"schoolform-data/internal/repository"
	"schoolform-data/internal/service"
	"schoolform-data/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "schoolform-data")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Static datasets: loaded once, immutable afterwards.
	hierarchy, err := location.LoadHierarchy(cfg.Data.LocationsFile)
	if err != nil {
		logger.Fatal("failed to load location hierarchy", zap.Error(err))
	}
	dataset, err := refdata.LoadFile(cfg.Data.SchoolsFile)
	if err != nil {
		logger.Fatal("failed to load reference dataset", zap.Error(err))
	}
	logger.Info("datasets loaded",
		zap.Int("regions", len(hierarchy.Regions())),
		zap.Int("schools", dataset.Len()),
	)

	// Optional autofill cache; the service runs uncached without Redis.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		kv = store.NewRedisKV(redisClient)
		logger.Info("autofill cache enabled", zap.String("redis_addr", cfg.Cache.Addr))
	}

	outbox, err := repository.NewSQLiteOutboxRepo(cfg.Outbox.Path)
	if err != nil {
		logger.Fatal("failed to open outbox store", zap.Error(err))
	}

	sink := service.NewSinkClient(cfg.Sink.BaseURL, cfg.Sink.SavePath, cfg.Sink.Timeout, logger)
	autofill := service.NewAutofillService(dataset, hierarchy, kv, cfg.Cache.TTL, logger)
	syncer := service.NewSyncService(outbox, sink, sink, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterProfileRoutes(httpapi.NewProfileHandler(autofill, sink, outbox, cfg.Sink.SavePath, logger))
	router.RegisterLocationRoutes(httpapi.NewLocationHandler(hierarchy))
	router.RegisterOutboxRoutes(httpapi.NewOutboxHandler(outbox, syncer, cfg.Sink.SavePath, logger))

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
	_ = outbox.Close()
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
