package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
)

type AttendanceService interface {
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) error

	// GetEmployeeAttendance returns one employee's records with a summary
	GetEmployeeAttendance(ctx context.Context, employeeID string) (EmployeeAttendanceResponse, error)
}

// Fetcher fans out one attendance fetch per employee and returns once every
// fetch has settled.
type Fetcher interface {
	Fetch(ctx context.Context, employees []employee.Employee) Collection
}
