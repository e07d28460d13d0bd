package models

// Shipper represents a shipping company
type Shipper struct {
	ID          int64  `json:"shipperId"`
	CompanyName string `json:"companyName"`
}
