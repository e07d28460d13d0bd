package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// CreateOrderRequest is the body of POST /api/orders.
// CustID is omitted for walk-in orders.
type CreateOrderRequest struct {
	CustID       *int64                `json:"custId"`
	EmpID        int64                 `json:"empId"`
	ShipperID    int64                 `json:"shipperId"`
	ShipName     string                `json:"shipName"`
	ShipAddress  string                `json:"shipAddress"`
	ShipCity     string                `json:"shipCity"`
	ShipCountry  string                `json:"shipCountry"`
	Freight      decimal.Decimal       `json:"freight"`
	OrderDate    *time.Time            `json:"orderDate,omitempty"`
	RequiredDate *time.Time            `json:"requiredDate,omitempty"`
	ShippedDate  *time.Time            `json:"shippedDate,omitempty"`
	Details      []CreateOrderLineItem `json:"details"`
	// Detail is the single-line form accepted for older clients
	Detail *CreateOrderLineItem `json:"detail,omitempty"`
}

// CreateOrderLineItem is one requested line. A nil UnitPrice takes the catalog price.
type CreateOrderLineItem struct {
	ProductID int64            `json:"productId"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Qty       int              `json:"qty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// lines returns Details, or the single Detail when Details is empty
func (r *CreateOrderRequest) lines() []CreateOrderLineItem {
	if len(r.Details) == 0 && r.Detail != nil {
		return []CreateOrderLineItem{*r.Detail}
	}
	return r.Details
}

// Validate performs validation on the create order request
func (r *CreateOrderRequest) Validate() error {
	if r.CustID != nil && *r.CustID <= 0 {
		return models.ErrInvalidInput("custId must be positive when supplied")
	}
	if r.EmpID <= 0 {
		return models.ErrInvalidInput("empId is required")
	}
	if r.ShipperID <= 0 {
		return models.ErrInvalidInput("shipperId is required")
	}
	if r.Freight.IsNegative() {
		return models.ErrInvalidInput("freight cannot be negative")
	}

	lines := r.lines()
	if len(lines) == 0 {
		return models.ErrInvalidInput("at least one order line is required")
	}

	seen := make(map[int64]struct{}, len(lines))
	for i, l := range lines {
		if l.ProductID <= 0 {
			return models.ErrInvalidInput(fmt.Sprintf("details[%d]: productId is required", i))
		}
		if _, dup := seen[l.ProductID]; dup {
			return models.ErrInvalidInput(fmt.Sprintf("details[%d]: product %d appears more than once", i, l.ProductID))
		}
		seen[l.ProductID] = struct{}{}

		if l.Qty <= 0 {
			return models.ErrInvalidInput(fmt.Sprintf("details[%d]: qty must be greater than 0", i))
		}
		if l.Discount.IsNegative() || l.Discount.GreaterThan(decimal.NewFromInt(1)) {
			return models.ErrInvalidInput(fmt.Sprintf("details[%d]: discount must be between 0 and 1", i))
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return models.ErrInvalidInput(fmt.Sprintf("details[%d]: unitPrice cannot be negative", i))
		}
	}

	return nil
}

// CreateOrderResult is the body returned after an order is created
type CreateOrderResult struct {
	OrderID int64 `json:"orderId"`
}

// ClientOrderDTO is one row of GET /api/customers/{id}/orders
type ClientOrderDTO struct {
	OrderID      int64      `json:"orderId"`
	RequiredDate time.Time  `json:"requiredDate"`
	ShippedDate  *time.Time `json:"shippedDate"`
	ShipName     string     `json:"shipName"`
	ShipAddress  string     `json:"shipAddress"`
	ShipCity     string     `json:"shipCity"`
}

// OrderDTO is the body of GET /api/orders/{id}
type OrderDTO struct {
	OrderID      int64            `json:"orderId"`
	CustID       *int64           `json:"custId"`
	EmpID        int64            `json:"empId"`
	ShipperID    int64            `json:"shipperId"`
	OrderDate    time.Time        `json:"orderDate"`
	RequiredDate time.Time        `json:"requiredDate"`
	ShippedDate  *time.Time       `json:"shippedDate"`
	Freight      decimal.Decimal  `json:"freight"`
	ShipName     string           `json:"shipName"`
	ShipAddress  string           `json:"shipAddress"`
	ShipCity     string           `json:"shipCity"`
	ShipCountry  string           `json:"shipCountry"`
	Details      []OrderDetailDTO `json:"details"`
}

// OrderDetailDTO is one line of OrderDTO
type OrderDetailDTO struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Qty         int             `json:"qty"`
	Discount    decimal.Decimal `json:"discount"`
}

func toClientOrderDTO(o models.ClientOrderSummary) ClientOrderDTO {
	return ClientOrderDTO{
		OrderID:      o.OrderID,
		RequiredDate: o.RequiredDate,
		ShippedDate:  o.ShippedDate,
		ShipName:     o.ShipName,
		ShipAddress:  o.ShipAddress,
		ShipCity:     o.ShipCity,
	}
}

func toOrderDTO(o *models.OrderDetail) *OrderDTO {
	dto := &OrderDTO{
		OrderID:      o.ID,
		CustID:       o.CustomerID,
		EmpID:        o.EmployeeID,
		ShipperID:    o.ShipperID,
		OrderDate:    o.OrderDate,
		RequiredDate: o.RequiredDate,
		ShippedDate:  o.ShippedDate,
		Freight:      o.Freight,
		ShipName:     o.ShipName,
		ShipAddress:  o.ShipAddress,
		ShipCity:     o.ShipCity,
		ShipCountry:  o.ShipCountry,
		Details:      make([]OrderDetailDTO, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		dto.Details = append(dto.Details, OrderDetailDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Qty:         l.Quantity,
			Discount:    l.Discount,
		})
	}
	return dto
}
