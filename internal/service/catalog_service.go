package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/repository"
)

// CatalogService lists the reference data an order form needs
type CatalogService interface {
	ListEmployees(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Employee], error)
	ListProducts(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Product], error)
	ListShippers(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Shipper], error)
}

type catalogService struct {
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	shipperRepo  repository.ShipperRepository
	logger       *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	shipperRepo repository.ShipperRepository,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		shipperRepo:  shipperRepo,
		logger:       logger,
	}
}

func (s *catalogService) ListEmployees(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Employee], error) {
	resp, err := list[models.Employee](ctx, s.employeeRepo, params)
	if err != nil {
		return nil, s.wrap("employees", err)
	}
	return resp, nil
}

func (s *catalogService) ListProducts(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Product], error) {
	resp, err := list[models.Product](ctx, s.productRepo, params)
	if err != nil {
		return nil, s.wrap("products", err)
	}
	return resp, nil
}

func (s *catalogService) ListShippers(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Shipper], error) {
	resp, err := list[models.Shipper](ctx, s.shipperRepo, params)
	if err != nil {
		return nil, s.wrap("shippers", err)
	}
	return resp, nil
}

func (s *catalogService) wrap(what string, err error) error {
	if models.IsInvalidInput(err) {
		return err
	}
	s.logger.Error("failed to list "+what, slog.String("error", err.Error()))
	return fmt.Errorf("failed to list %s: %w", what, err)
}
