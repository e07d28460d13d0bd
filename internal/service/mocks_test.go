package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/queue"
)

var errDatabase = errors.New("database unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSource serves GetAll and GetPage from an in-memory slice
type mockSource[T any] struct {
	items    []T
	err      error
	allCalls int
	pageArgs []models.PaginationParams
}

func (m *mockSource[T]) GetAll(ctx context.Context) ([]T, error) {
	m.allCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockSource[T]) GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[T], error) {
	m.pageArgs = append(m.pageArgs, params)
	if m.err != nil {
		return nil, m.err
	}

	start := min(params.Offset(), len(m.items))
	end := min(start+params.PageSize, len(m.items))
	return models.NewPagedResponse(m.items[start:end], len(m.items), params.PageSize), nil
}

type mockEmployeeRepository struct{ mockSource[models.Employee] }
type mockProductRepository struct{ mockSource[models.Product] }
type mockShipperRepository struct{ mockSource[models.Shipper] }

type mockPredictionRepository struct {
	mockSource[models.CustomerPrediction]
}

func (m *mockPredictionRepository) GetByCustomer(ctx context.Context, customerID int64) (*models.CustomerPrediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.items {
		if p.CustomerID == customerID {
			return &p, nil
		}
	}
	return nil, nil
}

// mockOrderRepository records created orders
type mockOrderRepository struct {
	orders    map[int64]*models.OrderDetail
	byCust    map[int64][]models.ClientOrderSummary
	createErr error
	getErr    error

	created      *models.Order
	createdLines []models.OrderLine
	nextID       int64
}

func (m *mockOrderRepository) GetByCustomer(ctx context.Context, customerID int64) ([]models.ClientOrderSummary, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byCust[customerID], nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.orders[id], nil
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	m.created = order
	m.createdLines = lines
	return order.ID, nil
}

// mockQueueClient records published events
type mockQueueClient struct {
	published  []*models.OrderCreatedEvent
	publishErr error
}

func (m *mockQueueClient) Publish(ctx context.Context, event *models.OrderCreatedEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockQueueClient) Consume(ctx context.Context, handler queue.EventHandler, concurrency int) error {
	return nil
}

func (m *mockQueueClient) Close() error { return nil }

func (m *mockQueueClient) Health(ctx context.Context) error { return nil }
