package hrapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := r.client.do(ctx, call{
		operation: "list_employees",
		method:    http.MethodGet,
		path:      "/employees",
		out:       &employees,
		fallback:  "Failed to load employees",
	})
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) error {
	return r.client.do(ctx, call{
		operation: "create_employee",
		method:    http.MethodPost,
		path:      "/employees",
		body:      req,
		fallback:  "Failed to create employee",
		rejected:  employee.ErrRejected,
	})
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	return r.client.do(ctx, call{
		operation: "delete_employee",
		method:    http.MethodDelete,
		path:      "/employees/" + url.PathEscape(employeeID),
		fallback:  "Failed to delete employee",
		rejected:  employee.ErrRejected,
	})
}
