package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// ProductRepository defines the interface for product catalog access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Product], error)
}

// productRepository implements ProductRepository using PostgreSQL
type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `
	SELECT productid, productname, unitprice
	FROM production.products
	ORDER BY productname, productid`

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.UnitPrice)
	return p, err
}

// GetAll retrieves every product ordered by name
func (r *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return queryAll(ctx, r.db, "products", productSelect, scanProduct)
}

// GetPage retrieves one page of products ordered by name
func (r *productRepository) GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Product], error) {
	return queryPage(ctx, r.db, "products",
		`SELECT COUNT(*) FROM production.products`,
		productSelect+` LIMIT $1 OFFSET $2`,
		params, scanProduct)
}

// catalogUnitPrice looks up the current catalog price of a product
func catalogUnitPrice(ctx context.Context, q queryer, productID int64) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := q.QueryRowContext(ctx,
		`SELECT unitprice FROM production.products WHERE productid = $1`,
		productID,
	).Scan(&price)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, models.ErrInvalidInput(fmt.Sprintf("product with ID %d not found", productID))
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get unit price for product %d: %w", productID, err)
	}

	return price, nil
}
