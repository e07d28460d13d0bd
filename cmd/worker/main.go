package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/sales-date-prediction/internal/config"
	"github.com/Raymond9734/sales-date-prediction/internal/db"
	"github.com/Raymond9734/sales-date-prediction/internal/queue"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
	"github.com/Raymond9734/sales-date-prediction/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("worker stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting prediction worker")

	if !cfg.QueueEnabled() {
		return errors.New("REDIS_URL is required for the worker")
	}

	connStr, err := cfg.ConnectionString(config.StoreSample)
	if err != nil {
		return err
	}

	database, err := db.New(connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	logger.Info("connected to database")

	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer queueClient.Close()

	notifier := worker.NewPredictionNotifier(repository.NewPredictionRepository(database.DB), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Consume returns after in-flight events finish
		err := queueClient.Consume(gctx, notifier.Process, cfg.Worker.Concurrency)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("worker stopped gracefully")
	return nil
}
