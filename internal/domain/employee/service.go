package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists employees with search, department filter, sorting and pagination
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// FilterEmployees applies the filter without pagination (used for exports)
	FilterEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	// Departments returns distinct departments in the order they were first seen
	Departments(ctx context.Context) ([]string, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) error

	DeleteEmployee(ctx context.Context, employeeID string) error

	// BulkDeleteEmployees deletes sequentially and stops at the first failure
	BulkDeleteEmployees(ctx context.Context, req BulkDeleteRequest) (BulkDeleteResponse, error)
}
