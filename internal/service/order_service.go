package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/queue"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
)

// OrderService handles order reads and order creation
type OrderService interface {
	GetClientOrders(ctx context.Context, customerID int64) ([]ClientOrderDTO, error)
	GetByID(ctx context.Context, id int64) (*OrderDTO, error)
	Create(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	queueClient queue.Client
	now         func() time.Time
	logger      *slog.Logger
}

// NewOrderService creates a new order service. queueClient may be nil, in
// which case no order events are published. now defaults to time.Now.
func NewOrderService(
	orderRepo repository.OrderRepository,
	queueClient queue.Client,
	now func() time.Time,
	logger *slog.Logger,
) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
		now:         now,
		logger:      logger,
	}
}

// GetClientOrders lists a customer's orders, newest first
func (s *orderService) GetClientOrders(ctx context.Context, customerID int64) ([]ClientOrderDTO, error) {
	orders, err := s.orderRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("failed to get client orders",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get client orders: %w", err)
	}

	result := make([]ClientOrderDTO, 0, len(orders))
	for _, o := range orders {
		result = append(result, toClientOrderDTO(o))
	}
	return result, nil
}

// GetByID retrieves an order with its lines
func (s *orderService) GetByID(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("order with ID %d not found", id))
	}

	return toOrderDTO(order), nil
}

// Create validates the request, resolves default dates and persists the order
func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	orderDate := s.now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	requiredDate := orderDate.Add(models.RequiredDateLeadTime)
	if req.RequiredDate != nil {
		requiredDate = *req.RequiredDate
	}

	order := &models.Order{
		CustomerID:   req.CustID,
		EmployeeID:   req.EmpID,
		ShipperID:    req.ShipperID,
		OrderDate:    orderDate,
		RequiredDate: requiredDate,
		ShippedDate:  req.ShippedDate,
		Freight:      req.Freight,
		ShipName:     req.ShipName,
		ShipAddress:  req.ShipAddress,
		ShipCity:     req.ShipCity,
		ShipCountry:  req.ShipCountry,
	}

	reqLines := req.lines()
	lines := make([]models.OrderLine, 0, len(reqLines))
	for _, l := range reqLines {
		lines = append(lines, models.OrderLine{
			ProductID: l.ProductID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Qty,
			Discount:  l.Discount,
		})
	}

	orderID, err := s.orderRepo.Create(ctx, order, lines)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		s.logger.Error("failed to create order",
			slog.Int64("employee_id", req.EmpID),
			slog.Int("lines", len(lines)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		slog.Int64("order_id", orderID),
		slog.Int("lines", len(lines)),
	)

	s.publishCreated(ctx, &models.OrderCreatedEvent{
		OrderID:    orderID,
		CustomerID: req.CustID,
		OrderDate:  orderDate,
	})

	return &CreateOrderResult{OrderID: orderID}, nil
}

// publishCreated is best effort: the order is already committed
func (s *orderService) publishCreated(ctx context.Context, event *models.OrderCreatedEvent) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.Int64("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
