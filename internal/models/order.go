package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequiredDateLeadTime is how far after the order date the required date falls
// when the caller does not supply one
const RequiredDateLeadTime = 7 * 24 * time.Hour

// Order is a persisted order header as written by order creation.
// CustomerID is nil for walk-in orders.
type Order struct {
	ID           int64
	CustomerID   *int64
	EmployeeID   int64
	ShipperID    int64
	OrderDate    time.Time
	RequiredDate time.Time
	ShippedDate  *time.Time
	Freight      decimal.Decimal
	ShipName     string
	ShipAddress  string
	ShipCity     string
	ShipCountry  string
}

// OrderLine is one line item to be written. A nil UnitPrice is resolved from
// the product catalog when the order is persisted.
type OrderLine struct {
	ProductID int64
	UnitPrice *decimal.Decimal
	Quantity  int
	Discount  decimal.Decimal
}

// OrderDetail is a persisted order header with its line items
type OrderDetail struct {
	Order
	Lines []OrderDetailLine
}

// OrderDetailLine is a persisted line item joined with its product name
type OrderDetailLine struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Discount    decimal.Decimal
}

// ClientOrderSummary is one row of a customer's order history
type ClientOrderSummary struct {
	OrderID      int64
	RequiredDate time.Time
	ShippedDate  *time.Time
	ShipName     string
	ShipAddress  string
	ShipCity     string
}

// OrderCreatedEvent is published after an order has been committed
type OrderCreatedEvent struct {
	OrderID    int64     `json:"order_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	OrderDate  time.Time `json:"order_date"`
}
