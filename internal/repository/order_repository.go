package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	GetByCustomer(ctx context.Context, customerID int64) ([]models.ClientOrderSummary, error)
	// GetByID returns nil without error when no order has the given ID
	GetByID(ctx context.Context, id int64) (*models.OrderDetail, error)
	// Create writes the header and every line in one transaction and sets order.ID
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error)
}

// orderRepository implements OrderRepository using PostgreSQL
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// PostgreSQL error codes that indicate bad caller input rather than a server fault
const (
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
	pqUniqueViolation     = "23505"
)

// GetByCustomer retrieves a customer's orders, newest first
func (r *orderRepository) GetByCustomer(ctx context.Context, customerID int64) ([]models.ClientOrderSummary, error) {
	query := `
		SELECT orderid, requireddate, shippeddate, shipname, shipaddress, shipcity
		FROM sales.orders
		WHERE custid = $1
		ORDER BY orderdate DESC, orderid DESC`

	return queryAll(ctx, r.db, "client orders", query, func(row rowScanner) (models.ClientOrderSummary, error) {
		var (
			o       models.ClientOrderSummary
			shipped sql.NullTime
		)
		if err := row.Scan(&o.OrderID, &o.RequiredDate, &shipped, &o.ShipName, &o.ShipAddress, &o.ShipCity); err != nil {
			return o, err
		}
		if shipped.Valid {
			o.ShippedDate = &shipped.Time
		}
		return o, nil
	}, customerID)
}

// GetByID retrieves an order header with its lines ordered by product name
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	headerQuery := `
		SELECT orderid, custid, empid, shipperid, orderdate, requireddate, shippeddate,
		       freight, shipname, shipaddress, shipcity, shipcountry
		FROM sales.orders
		WHERE orderid = $1`

	var (
		detail  models.OrderDetail
		custID  sql.NullInt64
		shipped sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, headerQuery, id).Scan(
		&detail.ID,
		&custID,
		&detail.EmployeeID,
		&detail.ShipperID,
		&detail.OrderDate,
		&detail.RequiredDate,
		&shipped,
		&detail.Freight,
		&detail.ShipName,
		&detail.ShipAddress,
		&detail.ShipCity,
		&detail.ShipCountry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	if custID.Valid {
		detail.CustomerID = &custID.Int64
	}
	if shipped.Valid {
		detail.ShippedDate = &shipped.Time
	}

	linesQuery := `
		SELECT d.productid, p.productname, d.unitprice, d.qty, d.discount
		FROM sales.orderdetails AS d
		JOIN production.products AS p ON p.productid = d.productid
		WHERE d.orderid = $1
		ORDER BY p.productname, d.productid`

	detail.Lines, err = queryAll(ctx, r.db, "order lines", linesQuery, func(row rowScanner) (models.OrderDetailLine, error) {
		var l models.OrderDetailLine
		err := row.Scan(&l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity, &l.Discount)
		return l, err
	}, id)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// Create inserts the order header and its lines atomically. Lines without a
// unit price take the catalog price read inside the same transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var custID sql.NullInt64
	if order.CustomerID != nil {
		custID = sql.NullInt64{Int64: *order.CustomerID, Valid: true}
	}
	var shipped sql.NullTime
	if order.ShippedDate != nil {
		shipped = sql.NullTime{Time: *order.ShippedDate, Valid: true}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO sales.orders (custid, empid, orderdate, requireddate, shippeddate,
		                          shipperid, freight, shipname, shipaddress, shipcity, shipcountry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING orderid`,
		custID,
		order.EmployeeID,
		order.OrderDate,
		order.RequiredDate,
		shipped,
		order.ShipperID,
		order.Freight,
		order.ShipName,
		order.ShipAddress,
		order.ShipCity,
		order.ShipCountry,
	).Scan(&order.ID)
	if err != nil {
		return 0, classifyWriteError("failed to create order", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales.orderdetails (orderid, productid, unitprice, qty, discount)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		price := line.UnitPrice
		if price == nil {
			p, err := catalogUnitPrice(ctx, tx, line.ProductID)
			if err != nil {
				return 0, err
			}
			price = &p
		}

		if _, err := stmt.ExecContext(ctx, order.ID, line.ProductID, *price, line.Quantity, line.Discount); err != nil {
			return 0, classifyWriteError(fmt.Sprintf("failed to create line for product %d", line.ProductID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order.ID, nil
}

// classifyWriteError turns constraint violations caused by caller data into
// INVALID_INPUT or CONFLICT errors and wraps everything else.
func classifyWriteError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation, pqNotNullViolation, pqCheckViolation:
			return models.ErrInvalidInputWrap(msg+": "+pqErr.Message, err)
		case pqUniqueViolation:
			return models.ErrConflictWithMsg(msg + ": " + pqErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
