package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/erwinbonsma/PartyQuiz/config"
	"github.com/erwinbonsma/PartyQuiz/events"
	"github.com/erwinbonsma/PartyQuiz/gateway"
	"github.com/erwinbonsma/PartyQuiz/storage/redisstore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// Load environment variables file, if running in development
	if os.Getenv("ENV") != "production" && os.Getenv("ENV") != "test" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file loaded:", err)
		}
	}

	cfg := config.LoadConfig()
	logger := setupLogger(cfg.Env)

	store := redisstore.New(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil { // fail fast
		logger.Error("failed to connect to Redis", "addr", cfg.Redis.Addr(), "error", err)
		os.Exit(1)
	}
	logger.Info("connected to Redis", "addr", cfg.Redis.Addr())

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.MQ.Configured() {
		rabbit, err := events.NewRabbitPublisher(cfg.MQ.URL())
		if err != nil {
			logger.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer rabbit.Close()
		publisher = rabbit
		logger.Info("connected to broker")
	}

	srv := gateway.NewServer(store, publisher, logger)
	server := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: srv.Router(),
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("HTTP server is starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe error", "err", err)
			os.Exit(1)
		}
	}()

	<-stopChan
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server Shutdown", "err", err)
	} else {
		logger.Info("HTTP server exited properly")
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
	return log
}
