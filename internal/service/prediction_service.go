package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
)

// PredictionService reports each customer's estimated next order date
type PredictionService interface {
	List(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.CustomerPrediction], error)
}

type predictionService struct {
	predictionRepo repository.PredictionRepository
	logger         *slog.Logger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(predictionRepo repository.PredictionRepository, logger *slog.Logger) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		logger:         logger,
	}
}

// List returns predictions ordered by customer name, paged when params is set
func (s *predictionService) List(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.CustomerPrediction], error) {
	resp, err := list[models.CustomerPrediction](ctx, s.predictionRepo, params)
	if err != nil {
		if models.IsInvalidInput(err) {
			return nil, err
		}
		s.logger.Error("failed to compute predictions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute predictions: %w", err)
	}
	return resp, nil
}
