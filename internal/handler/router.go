package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// RouterConfig holds everything NewRouter wires together
type RouterConfig struct {
	Catalog       *CatalogHandler
	Predictions   *PredictionHandler
	Orders        *OrderHandler
	Health        *HealthHandler
	AllowedOrigin string
	Logger        *slog.Logger
}

// NewRouter builds the HTTP routes and middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigin))
	r.Use(BodyLimitMiddleware(MaxRequestBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.CodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Get("/health", cfg.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/customers/{id}/orders", cfg.Orders.GetClientOrders)
		r.Get("/employees", cfg.Catalog.ListEmployees)
		r.Get("/products", cfg.Catalog.ListProducts)
		r.Get("/shippers", cfg.Catalog.ListShippers)
		r.Get("/predictions", cfg.Predictions.ListPredictions)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.Orders.CreateOrder)
			r.Get("/{id}", cfg.Orders.GetOrder)
		})
	})

	return r
}
