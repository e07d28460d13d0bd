package repository

import (
	"context"
	"database/sql"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]models.Employee, error)
	GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Employee], error)
}

// employeeRepository implements EmployeeRepository using PostgreSQL
type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelect = `
	SELECT e.empid, TRIM(e.firstname) || ' ' || TRIM(e.lastname) AS full_name
	FROM hr.employees AS e
	ORDER BY full_name, e.empid`

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.FullName)
	return e, err
}

// GetAll retrieves every employee ordered by full name
func (r *employeeRepository) GetAll(ctx context.Context) ([]models.Employee, error) {
	return queryAll(ctx, r.db, "employees", employeeSelect, scanEmployee)
}

// GetPage retrieves one page of employees ordered by full name
func (r *employeeRepository) GetPage(ctx context.Context, params models.PaginationParams) (*models.PaginationResponse[models.Employee], error) {
	return queryPage(ctx, r.db, "employees",
		`SELECT COUNT(*) FROM hr.employees`,
		employeeSelect+` LIMIT $1 OFFSET $2`,
		params, scanEmployee)
}
