package employee

import "context"

// EmployeeRepository is the remote source of employee records.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) error
	Delete(ctx context.Context, employeeID string) error
}
