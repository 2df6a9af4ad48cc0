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
	"github.com/spf13/cobra"
	"github.com/tasknest/tasknest-api/internal/auth"
	"github.com/tasknest/tasknest-api/internal/database"
	"github.com/tasknest/tasknest-api/internal/handlers"
	"github.com/tasknest/tasknest-api/internal/middleware"
	"github.com/tasknest/tasknest-api/internal/repository"
	"github.com/tasknest/tasknest-api/internal/services"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, logger); err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	} else {
		logger.Info("OPENAI_API_KEY not set, subtask suggestions disabled")
	}

	userRepo := repository.NewUserRepository(db)
	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo, tokens), logger)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(userRepo, aiService), logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	handlers.RegisterRoutes(r, authHandler, taskHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
