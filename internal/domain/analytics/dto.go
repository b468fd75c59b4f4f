package analytics

import (
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// ========================================
// GLOBAL ATTENDANCE ANALYTICS
// ========================================

type AggregatedStats struct {
	TotalPresent         int                        `json:"total_present"`
	TotalAbsent          int                        `json:"total_absent"`
	TotalRecords         int                        `json:"total_records"`
	AttendancePercentage string                     `json:"attendance_percentage"`
	DepartmentStats      map[string]DepartmentStats `json:"department_stats"`
	TopAbsentees         []Absentee                 `json:"top_absentees"`
}

type DepartmentStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
	// Rate is present/total as a whole percentage
	Rate string `json:"rate"`
}

type Absentee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	AbsentCount  int    `json:"absent_count"`
}

type GlobalAnalyticsResponse struct {
	AggregatedStats
	GeneratedAt       string   `json:"generated_at"`
	Degraded          bool     `json:"degraded"`
	FailedEmployeeIDs []string `json:"failed_employee_ids"`
}

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyReportRequest struct {
	Month string `json:"month"`
}

// Validate defaults an empty month to the current one.
func (r *MonthlyReportRequest) Validate() error {
	if r.Month == "" {
		r.Month = time.Now().Format("2006-01")
	}

	var errs validator.ValidationErrors
	if _, ok := validator.IsValidYearMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReport struct {
	Month           string                  `json:"month"`
	MonthName       string                  `json:"month_name"`
	PeriodStart     string                  `json:"period_start"`
	PeriodEnd       string                  `json:"period_end"`
	EmployeeRecords []MonthlyEmployeeRecord `json:"employee_records"`
	Summary         MonthlySummary          `json:"summary"`
}

// MonthlyEmployeeRecord field order is the CSV column order.
type MonthlyEmployeeRecord struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Total      int    `json:"total"`
	Percentage string `json:"percentage"`
}

type MonthlySummary struct {
	TotalEmployees    int    `json:"total_employees"`
	TotalRecords      int    `json:"total_records"`
	TotalPresent      int    `json:"total_present"`
	TotalAbsent       int    `json:"total_absent"`
	AverageAttendance string `json:"average_attendance"`
}

type MonthlyReportResponse struct {
	MonthlyReport
	GeneratedAt       string   `json:"generated_at"`
	Degraded          bool     `json:"degraded"`
	FailedEmployeeIDs []string `json:"failed_employee_ids"`
}

// ========================================
// ATTENDANCE TIMELINE
// ========================================

type TimelineRequest struct {
	// EmployeeID scopes the timeline to one employee; empty means everyone
	EmployeeID string `json:"employee_id"`
}

type Timeline struct {
	EmployeeID string              `json:"employee_id,omitempty"`
	Records    []attendance.Record `json:"records"`
	Summary    attendance.Summary  `json:"summary"`
}

type TimelineResponse struct {
	Timeline
	Degraded          bool     `json:"degraded"`
	FailedEmployeeIDs []string `json:"failed_employee_ids"`
}
