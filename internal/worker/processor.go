package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
)

// PredictionNotifier recomputes a customer's next-order prediction whenever
// one of their orders is created. It only reads from the database.
type PredictionNotifier struct {
	predictionRepo repository.PredictionRepository
	logger         *slog.Logger
}

// NewPredictionNotifier creates a new prediction notifier
func NewPredictionNotifier(predictionRepo repository.PredictionRepository, logger *slog.Logger) *PredictionNotifier {
	return &PredictionNotifier{
		predictionRepo: predictionRepo,
		logger:         logger,
	}
}

// Process handles a single order-created event
func (p *PredictionNotifier) Process(ctx context.Context, event *models.OrderCreatedEvent) error {
	if event.CustomerID == nil {
		p.logger.Debug("walk-in order, no prediction to refresh", slog.Int64("order_id", event.OrderID))
		return nil
	}
	customerID := *event.CustomerID

	prediction, err := p.predictionRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to refresh prediction for customer %d: %w", customerID, err)
	}
	if prediction == nil {
		// order was created but is not visible yet, or the customer row is gone
		p.logger.Warn("no prediction for customer",
			slog.Int64("order_id", event.OrderID),
			slog.Int64("customer_id", customerID),
		)
		return nil
	}

	attrs := []any{
		slog.Int64("order_id", event.OrderID),
		slog.Int64("customer_id", prediction.CustomerID),
		slog.String("customer_name", prediction.CustomerName),
		slog.String("last_order_date", prediction.LastOrderDate.Format(time.DateOnly)),
	}
	if prediction.NextPredictedOrder != nil {
		attrs = append(attrs, slog.String("next_predicted_order", prediction.NextPredictedOrder.Format(time.DateOnly)))
	}
	p.logger.Info("prediction refreshed", attrs...)

	return nil
}
