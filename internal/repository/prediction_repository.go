package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// PredictionRepository defines the interface for next-order-date predictions
type PredictionRepository interface {
	GetAll(ctx context.Context) ([]models.CustomerPrediction, error)
	GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.CustomerPrediction], error)
	// GetByCustomer returns nil without error when the customer has no orders
	GetByCustomer(ctx context.Context, customerID int64) (*models.CustomerPrediction, error)
}

// predictionRepository implements PredictionRepository using PostgreSQL
type predictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *sql.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

// predictionCTE computes, per customer, the last order day and the rounded
// average number of days between consecutive orders, plus the same average over
// every customer. Order timestamps are truncated to dates first, so date - date
// yields whole days. AVG over integers is numeric, and ROUND(numeric) rounds
// half away from zero.
const predictionCTE = `
	WITH orders_norm AS (
		SELECT o.custid, o.orderdate::date AS orderdate
		FROM sales.orders AS o
		WHERE o.custid IS NOT NULL
	),
	gaps AS (
		SELECT custid,
		       LEAD(orderdate) OVER (PARTITION BY custid ORDER BY orderdate) - orderdate AS days_between
		FROM orders_norm
	),
	diffs AS (
		SELECT custid, days_between
		FROM gaps
		WHERE days_between IS NOT NULL
	),
	avg_per_customer AS (
		SELECT custid, ROUND(AVG(days_between))::int AS avg_days
		FROM diffs
		GROUP BY custid
	),
	last_order AS (
		SELECT custid, MAX(orderdate) AS last_order_date
		FROM orders_norm
		GROUP BY custid
	),
	global_avg AS (
		SELECT ROUND(AVG(days_between))::int AS avg_days
		FROM diffs
	)`

const predictionSelect = predictionCTE + `
	SELECT c.custid,
	       c.companyname,
	       lo.last_order_date,
	       lo.last_order_date + COALESCE(apc.avg_days, ga.avg_days) AS next_predicted_order
	FROM sales.customers AS c
	JOIN last_order AS lo ON lo.custid = c.custid
	LEFT JOIN avg_per_customer AS apc ON apc.custid = c.custid
	CROSS JOIN global_avg AS ga`

const predictionOrder = `
	ORDER BY c.companyname, c.custid`

const predictionCount = `
	SELECT COUNT(*)
	FROM sales.customers AS c
	WHERE EXISTS (SELECT 1 FROM sales.orders AS o WHERE o.custid = c.custid)`

func scanPrediction(row rowScanner) (models.CustomerPrediction, error) {
	var (
		p    models.CustomerPrediction
		next sql.NullTime
	)
	if err := row.Scan(&p.CustomerID, &p.CustomerName, &p.LastOrderDate, &next); err != nil {
		return p, err
	}
	if next.Valid {
		p.NextPredictedOrder = &next.Time
	}
	return p, nil
}

// GetAll computes predictions for every customer with at least one order
func (r *predictionRepository) GetAll(ctx context.Context) ([]models.CustomerPrediction, error) {
	return queryAll(ctx, r.db, "predictions", predictionSelect+predictionOrder, scanPrediction)
}

// GetPage computes one page of predictions ordered by customer name
func (r *predictionRepository) GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.CustomerPrediction], error) {
	return queryPage(ctx, r.db, "predictions",
		predictionCount,
		predictionSelect+predictionOrder+` LIMIT $1 OFFSET $2`,
		params, scanPrediction)
}

// GetByCustomer computes the prediction for a single customer
func (r *predictionRepository) GetByCustomer(ctx context.Context, customerID int64) (*models.CustomerPrediction, error) {
	row := r.db.QueryRowContext(ctx, predictionSelect+` WHERE c.custid = $1`, customerID)

	p, err := scanPrediction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction for customer %d: %w", customerID, err)
	}

	return &p, nil
}
