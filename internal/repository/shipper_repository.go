package repository

import (
	"context"
	"database/sql"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// ShipperRepository defines the interface for shipper data access
type ShipperRepository interface {
	GetAll(ctx context.Context) ([]models.Shipper, error)
	GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Shipper], error)
}

// shipperRepository implements ShipperRepository using PostgreSQL
type shipperRepository struct {
	db *sql.DB
}

// NewShipperRepository creates a new shipper repository
func NewShipperRepository(db *sql.DB) ShipperRepository {
	return &shipperRepository{db: db}
}

const shipperSelect = `
	SELECT shipperid, companyname
	FROM sales.shippers
	ORDER BY companyname, shipperid`

func scanShipper(row rowScanner) (models.Shipper, error) {
	var s models.Shipper
	err := row.Scan(&s.ID, &s.CompanyName)
	return s, err
}

// GetAll retrieves every shipper ordered by company name
func (r *shipperRepository) GetAll(ctx context.Context) ([]models.Shipper, error) {
	return queryAll(ctx, r.db, "shippers", shipperSelect, scanShipper)
}

// GetPage retrieves one page of shippers ordered by company name
func (r *shipperRepository) GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Shipper], error) {
	return queryPage(ctx, r.db, "shippers",
		`SELECT COUNT(*) FROM sales.shippers`,
		shipperSelect+` LIMIT $1 OFFSET $2`,
		params, scanShipper)
}
