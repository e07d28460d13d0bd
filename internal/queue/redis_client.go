package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// MaxConcurrency caps the number of events handled at once
const MaxConcurrency = 5

const popTimeout = time.Second

// redisClient implements Client on a Redis list (LPUSH / BRPOP gives FIFO order)
type redisClient struct {
	client    *redis.Client
	queueName string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	QueueName string
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg RedisConfig, logger *slog.Logger) (Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("queue", cfg.QueueName),
	)

	return &redisClient{
		client:    client,
		queueName: cfg.QueueName,
		logger:    logger,
	}, nil
}

// Publish pushes an order-created event onto the queue
func (c *redisClient) Publish(ctx context.Context, event *models.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push event to queue: %w", err)
	}

	c.logger.Debug("order event published", slog.Int64("order_id", event.OrderID))

	return nil
}

// Consume pops events and hands each to handler on its own goroutine
func (c *redisClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	concurrency = clampConcurrency(concurrency)

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	var g errgroup.Group
	g.SetLimit(concurrency)

	drain := func(err error) error {
		c.logger.Info("consumer stopping, waiting for in-flight events")
		_ = g.Wait()
		c.logger.Info("all in-flight events completed")
		return err
	}

	for {
		if ctx.Err() != nil {
			return drain(ctx.Err())
		}

		result, err := c.client.BRPop(ctx, popTimeout, c.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return drain(err)
			}
			c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
			case <-time.After(popTimeout):
			}
			continue
		}

		// BRPOP returns [key, value]
		if len(result) < 2 {
			c.logger.Error("unexpected BRPOP result format")
			continue
		}

		event, err := decodeEvent(result[1])
		if err != nil {
			c.logger.Error("failed to decode event",
				slog.String("error", err.Error()),
				slog.String("data", result[1]),
			)
			continue
		}

		// Go blocks while concurrency handlers are running
		g.Go(func() error {
			if err := handler(ctx, event); err != nil {
				c.logger.Error("handler failed to process event",
					slog.Int64("order_id", event.OrderID),
					slog.String("error", err.Error()),
				)
			}
			return nil
		})
	}
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health pings Redis
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

func clampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}

func decodeEvent(data string) (*models.OrderCreatedEvent, error) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	if event.OrderID <= 0 {
		return nil, errors.New("event has no order id")
	}
	return &event, nil
}
