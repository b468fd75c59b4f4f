package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Date = strings.TrimSpace(r.Date)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if r.Date == "" {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if r.Status != StatusPresent && r.Status != StatusAbsent {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Present or Absent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeAttendanceResponse struct {
	EmployeeID string   `json:"employee_id"`
	Records    []Record `json:"records"`
	Summary    Summary  `json:"summary"`
}
