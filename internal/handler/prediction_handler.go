package handler

import (
	"log/slog"
	"net/http"

	"github.com/Raymond9734/sales-date-prediction/internal/service"
)

// PredictionHandler serves next-order-date predictions
type PredictionHandler struct {
	predictionService service.PredictionService
	logger            *slog.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService service.PredictionService, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		logger:            logger,
	}
}

// ListPredictions handles GET /api/predictions
func (h *PredictionHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h.logger, h.predictionService.List)
}
