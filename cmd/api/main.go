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
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/sales-date-prediction/internal/config"
	"github.com/Raymond9734/sales-date-prediction/internal/db"
	"github.com/Raymond9734/sales-date-prediction/internal/handler"
	"github.com/Raymond9734/sales-date-prediction/internal/queue"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
	"github.com/Raymond9734/sales-date-prediction/internal/service"
)

func main() {
	// .env is optional; real environment variables win
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
		logger.Error("api server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting sales date prediction API")

	// monetary values go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

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

	var queueClient queue.Client
	if cfg.QueueEnabled() {
		queueClient, err = queue.NewRedisClient(queue.RedisConfig{
			URL:       cfg.Queue.RedisURL,
			QueueName: cfg.Queue.QueueName,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer queueClient.Close()
	} else {
		logger.Info("no queue configured, order events are not published")
	}

	employeeRepo := repository.NewEmployeeRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	shipperRepo := repository.NewShipperRepository(database.DB)
	predictionRepo := repository.NewPredictionRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)

	catalogSvc := service.NewCatalogService(employeeRepo, productRepo, shipperRepo, logger)
	predictionSvc := service.NewPredictionService(predictionRepo, logger)
	orderSvc := service.NewOrderService(orderRepo, queueClient, time.Now, logger)

	var queueHealth handler.Pinger
	if queueClient != nil {
		queueHealth = queueClient
	}

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:       handler.NewCatalogHandler(catalogSvc, logger),
		Predictions:   handler.NewPredictionHandler(predictionSvc, logger),
		Orders:        handler.NewOrderHandler(orderSvc, logger),
		Health:        handler.NewHealthHandler(database, queueHealth, logger),
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		Logger:        logger,
	})

	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("API server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
