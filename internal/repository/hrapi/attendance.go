package hrapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	var records []attendance.Record
	err := r.client.do(ctx, call{
		operation: "list_attendance",
		method:    http.MethodGet,
		path:      "/attendance/" + url.PathEscape(employeeID),
		out:       &records,
		fallback:  "Failed to load attendance",
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// Record implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Record(ctx context.Context, req attendance.RecordAttendanceRequest) error {
	return r.client.do(ctx, call{
		operation: "record_attendance",
		method:    http.MethodPost,
		path:      "/attendance",
		body:      req,
		fallback:  "Attendance error",
		rejected:  attendance.ErrRejected,
	})
}
