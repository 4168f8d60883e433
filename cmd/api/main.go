package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ideahub/ideahub-api/internal/config"
	"github.com/ideahub/ideahub-api/internal/database"
	"github.com/ideahub/ideahub-api/internal/handler"
	"github.com/ideahub/ideahub-api/internal/metrics"
	"github.com/ideahub/ideahub-api/internal/repository"
	"github.com/ideahub/ideahub-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	sourceRepo := repository.NewSourceRepository(db)

	authService := service.NewAuthService(userRepo, service.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		JWTExpiry:  cfg.JWTExpiry,
		BcryptCost: cfg.BcryptCost,
	})
	ideaService := service.NewIdeaService(ideaRepo, collector)
	recommendService := service.NewRecommendService(ideaRepo)
	reactionService := service.NewReactionService(reactionRepo, collector)
	sourceService := service.NewSourceService(sourceRepo)

	router := handler.NewRouter(handler.Deps{
		JWTSecret: cfg.JWTSecret,
		Metrics:   collector,
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(authService),
		Ideas:     handler.NewIdeaHandler(ideaService, recommendService),
		Reactions: handler.NewReactionHandler(reactionService),
		Sources:   handler.NewSourceHandler(sourceService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
