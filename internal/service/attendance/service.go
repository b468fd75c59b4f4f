package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	activityLog    *activitylog.Log
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, activityLog *activitylog.Log) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		activityLog:    activityLog,
	}
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.attendanceRepo.Record(ctx, req); err != nil {
		return fmt.Errorf("failed to record attendance for employee %s: %w", req.EmployeeID, err)
	}

	s.activityLog.Append(
		activitylog.ActionAttendanceMarked,
		fmt.Sprintf("%s marked %s on %s", req.EmployeeID, req.Status, req.Date),
		activitylog.UserFromContext(ctx),
	)
	return nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string) (attendance.EmployeeAttendanceResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return attendance.EmployeeAttendanceResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "employee_id is required"},
		}
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeAttendanceResponse{}, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	attendance.SortNewestFirst(records)

	return attendance.EmployeeAttendanceResponse{
		EmployeeID: employeeID,
		Records:    records,
		Summary:    attendance.Summarize(records),
	}, nil
}
