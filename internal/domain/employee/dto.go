package employee

import (
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
	Position   string `json:"position,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Department = strings.TrimSpace(r.Department)
	r.Position = strings.TrimSpace(r.Position)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	} else if len([]rune(r.FullName)) < 3 {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must be at least 3 characters"})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeFilter narrows, orders and pages the employee list
type EmployeeFilter struct {
	Search     string
	Department string
	SortBy     SortField
	SortOrder  SortOrder
	Page       int
	Limit      int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.SortBy == "" {
		f.SortBy = SortByFullName
	}
	if f.SortOrder == "" {
		f.SortOrder = SortAsc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	validSorts := []string{
		string(SortByFullName),
		string(SortByEmployeeID),
		string(SortByDepartment),
		string(SortByEmail),
		string(SortByPosition),
	}
	if !validator.IsInSlice(string(f.SortBy), validSorts) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort",
			Message: "sort must be one of: " + strings.Join(validSorts, ", "),
		})
	}

	if f.SortOrder != SortAsc && f.SortOrder != SortDesc {
		errs = append(errs, validator.ValidationError{Field: "order", Message: "order must be asc or desc"})
	}

	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Showing    string     `json:"showing"`
	Employees  []Employee `json:"employees"`
}

type BulkDeleteRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

func (r *BulkDeleteRequest) Validate() error {
	if len(r.EmployeeIDs) == 0 {
		return ErrNoEmployeesChosen
	}
	var errs validator.ValidationErrors
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "employee_ids must not contain empty values"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkDeleteResponse struct {
	Deleted []string `json:"deleted"`
}
