package models

import "time"

// CustomerPrediction is the estimated date of a customer's next order.
// NextPredictedOrder is nil when no customer has two or more orders, since then
// there is no interval to average.
type CustomerPrediction struct {
	CustomerID         int64      `json:"customerId"`
	CustomerName       string     `json:"customerName"`
	LastOrderDate      time.Time  `json:"lastOrderDate"`
	NextPredictedOrder *time.Time `json:"nextPredictedOrder"`
}
