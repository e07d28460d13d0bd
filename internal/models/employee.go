package models

// Employee represents an employee able to take orders.
// FullName is the trimmed first name and last name joined by a space.
type Employee struct {
	ID       int64  `json:"empId"`
	FullName string `json:"fullName"`
}
