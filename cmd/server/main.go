package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salesight/salesight/internal/analytics"
	"github.com/salesight/salesight/internal/api"
	"github.com/salesight/salesight/internal/cache"
	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/ingest"
	"github.com/salesight/salesight/internal/normalize"
	"github.com/salesight/salesight/internal/repository"
	"github.com/salesight/salesight/internal/repository/postgres"
	"github.com/salesight/salesight/internal/service"
	"github.com/salesight/salesight/internal/storage"
	"github.com/salesight/salesight/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	store := buildStore(cfg)

	snapCache, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("snapshot cache unavailable, running without it")
		snapCache = cache.NewNoopSnapshotCache()
	}

	archiver := buildArchiver(cfg)

	normalizer := normalize.NewNormalizer(normalize.NewResolver(normalize.DefaultAliases()), cfg.Normalize)
	pipeline := ingest.NewPipeline(normalizer)
	repo := repository.NewSalesRepository(store)
	engine := analytics.NewEngine(cfg.Analytics)

	services := &api.Services{
		SalesService:     service.NewSalesService(pipeline, repo, snapCache, archiver),
		AnalyticsService: service.NewAnalyticsService(repo, engine, snapCache),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildStore prefers Postgres and falls back to the in-memory store when the
// database is unreachable, so local development needs no infrastructure.
func buildStore(cfg *config.Config) repository.Store {
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("database unavailable, using in-memory store")
		return repository.NewMemoryStore()
	}
	return postgres.NewSalesStore(db)
}

func buildArchiver(cfg *config.Config) storage.BatchArchiver {
	if !cfg.Archive.Enabled {
		return storage.NewNoopArchiver()
	}
	archiver, err := storage.NewMinioArchiver(cfg.Archive)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("archive unavailable, uploads will not be archived")
		return storage.NewNoopArchiver()
	}
	return archiver
}
