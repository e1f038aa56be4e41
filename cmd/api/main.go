// Package main provides the FridgeLens API server entry point.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fridgelens/v1/internal/application/favorites"
	"github.com/fridgelens/v1/internal/application/pipeline"
	"github.com/fridgelens/v1/internal/application/profile"
	"github.com/fridgelens/v1/internal/application/workout"
	"github.com/fridgelens/v1/internal/infrastructure/ai/gemini"
	"github.com/fridgelens/v1/internal/infrastructure/auth"
	"github.com/fridgelens/v1/internal/infrastructure/config"
	"github.com/fridgelens/v1/internal/infrastructure/http/server"
	"github.com/fridgelens/v1/internal/infrastructure/monitoring"
	"github.com/fridgelens/v1/internal/infrastructure/persistence/kvstore"
	"github.com/fridgelens/v1/internal/ports/outbound"
	"github.com/fridgelens/v1/pkg/healthcheck"
	"github.com/fridgelens/v1/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Environment == "development",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting FridgeLens",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Key-value backend selection
	var kv outbound.KVStore
	switch cfg.Storage.Backend {
	case "redis":
		redisKV, err := kvstore.NewRedis(ctx, cfg.Storage, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisKV.Close()
		kv = redisKV
	default:
		kv = kvstore.NewMemory()
	}

	profileStore := kvstore.NewProfileStore(kv, appLogger)
	favoritesStore := kvstore.NewFavoritesStore(kv, appLogger)
	workoutStore := kvstore.NewWorkoutStore(kv, appLogger)

	aiClient := gemini.NewClient(cfg.AI, cfg.RateLimit, appLogger)
	metrics := monitoring.NewMetricsCollector()

	pipelineService := pipeline.NewService(aiClient, profileStore, workoutStore, metrics, appLogger)
	favoritesService := favorites.NewService(favoritesStore, appLogger)
	profileService := profile.NewService(profileStore, appLogger)
	workoutService := workout.NewService(workoutStore, appLogger)

	tokenService := auth.NewTokenService(cfg.Auth)
	oauthClient := auth.NewOAuthClient(cfg.Auth, appLogger)

	health := healthcheck.New(cfg.App.Version, appLogger)
	health.Register("ai", healthcheck.NewDependencyChecker(aiClient))
	health.Register("kvstore", healthcheck.NewKVChecker(kv.Get, kv.Set))

	srv := server.New(cfg, appLogger, server.Dependencies{
		Pipeline:  pipelineService,
		Favorites: favoritesService,
		Profiles:  profileService,
		Workouts:  workoutService,
		OAuth:     oauthClient,
		Tokens:    tokenService,
		Metrics:   metrics,
		Health:    health,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Server listening",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
		)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
