package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/sales-date-prediction/internal/service"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService service.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondCreated(w, fmt.Sprintf("/api/orders/%d", result.OrderID), result)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, codeInvalidID, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, order)
}

// GetClientOrders handles GET /api/customers/{id}/orders
func (h *OrderHandler) GetClientOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, r, http.StatusBadRequest, codeInvalidID, "Invalid customer ID")
		return
	}

	orders, err := h.orderService.GetClientOrders(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	respondSuccess(w, orders)
}
