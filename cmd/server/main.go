package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rahmasleam/NexusMenaV2/internal/app"
	"github.com/rahmasleam/NexusMenaV2/internal/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional, defaults apply)")
	flag.Parse()

	// .env is optional; the model-access credential usually arrives this way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// The credential is read from the environment exactly once; it is
	// handed to the AI gateway and never logged or serialized.
	credential := cfg.LoadAICredential()
	if credential == "" {
		logger.Warn("model-access credential not set, AI features degrade to fallbacks",
			zap.String("env", cfg.AI.CredentialEnv))
	}

	application, err := app.New(logger, cfg, credential)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    application.Addr(),
		Handler: application.Router(),
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	application.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
