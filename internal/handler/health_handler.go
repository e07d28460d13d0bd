package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	statusHealthy       = "healthy"
	statusUnhealthy     = "unhealthy"
	statusNotConfigured = "not_configured"
)

// Pinger is satisfied by *db.DB and queue.Client
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db     Pinger
	queue  Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. queue may be nil when no
// queue is configured.
func NewHealthHandler(db Pinger, queue Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		queue:  queue,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   statusHealthy,
		Services: map[string]string{},
	}

	check := func(name string, p Pinger) {
		if p == nil {
			response.Services[name] = statusNotConfigured
			return
		}
		if err := p.Health(ctx); err != nil {
			h.logger.Error(name+" health check failed", slog.String("error", err.Error()))
			response.Status = statusUnhealthy
			response.Services[name] = statusUnhealthy
			return
		}
		response.Services[name] = statusHealthy
	}

	check("database", h.db)
	check("queue", h.queue)

	if response.Status == statusHealthy {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
