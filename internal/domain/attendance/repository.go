package attendance

import "context"

// AttendanceRepository is the remote source of attendance records.
type AttendanceRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	Record(ctx context.Context, req RecordAttendanceRequest) error
}
