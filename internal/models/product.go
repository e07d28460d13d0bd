package models

import "github.com/shopspring/decimal"

// Product represents a catalog product
type Product struct {
	ID        int64           `json:"productId"`
	Name      string          `json:"productName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
