package queue

import (
	"context"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// Client publishes and consumes order events
type Client interface {
	// Publish pushes an order-created event onto the queue
	Publish(ctx context.Context, event *models.OrderCreatedEvent) error

	// Consume pops events until ctx is cancelled, running at most
	// concurrency handlers at a time. It waits for in-flight handlers before returning.
	Consume(ctx context.Context, handler EventHandler, concurrency int) error

	Close() error

	Health(ctx context.Context) error
}

// EventHandler processes one order-created event
type EventHandler func(ctx context.Context, event *models.OrderCreatedEvent) error
