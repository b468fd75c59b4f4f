package employee

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
)

// allDepartments is the department filter value that disables filtering
const allDepartments = "all"

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	activityLog  *activitylog.Log
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, activityLog *activitylog.Log) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		activityLog:  activityLog,
	}
}

// FilterEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) FilterEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return applyFilter(employees, filter), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	filtered := applyFilter(employees, filter)
	total := len(filtered)

	start := min((filter.Page-1)*filter.Limit, total)
	end := min(start+filter.Limit, total)
	page := make([]employee.Employee, 0, end-start)
	page = append(page, filtered[start:end]...)

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", start+1, end, total)
	if total == 0 || start == end {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: int64(total),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  page,
	}, nil
}

// Departments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Departments(ctx context.Context) ([]string, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	seen := make(map[string]struct{})
	departments := []string{}
	for _, emp := range employees {
		if emp.Department == "" {
			continue
		}
		if _, ok := seen[emp.Department]; ok {
			continue
		}
		seen[emp.Department] = struct{}{}
		departments = append(departments, emp.Department)
	}
	return departments, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.employeeRepo.Create(ctx, req); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	s.activityLog.Append(
		activitylog.ActionEmployeeAdded,
		fmt.Sprintf("%s (%s) joined %s", req.FullName, req.EmployeeID, req.Department),
		activitylog.UserFromContext(ctx),
	)
	return nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return employee.ErrNoEmployeesChosen
	}

	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", employeeID, err)
	}

	s.activityLog.Append(activitylog.ActionEmployeeDeleted, employeeID, activitylog.UserFromContext(ctx))
	return nil
}

// BulkDeleteEmployees implements employee.EmployeeService.
// Employees deleted before a failure stay deleted and are reported.
func (s *EmployeeServiceImpl) BulkDeleteEmployees(ctx context.Context, req employee.BulkDeleteRequest) (employee.BulkDeleteResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.BulkDeleteResponse{}, err
	}

	resp := employee.BulkDeleteResponse{Deleted: make([]string, 0, len(req.EmployeeIDs))}
	for _, id := range req.EmployeeIDs {
		id = strings.TrimSpace(id)
		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			if len(resp.Deleted) > 0 {
				s.logBulkDelete(ctx, resp.Deleted)
			}
			return resp, fmt.Errorf("failed to delete employee %s: %w", id, err)
		}
		resp.Deleted = append(resp.Deleted, id)
	}

	s.logBulkDelete(ctx, resp.Deleted)
	return resp, nil
}

func (s *EmployeeServiceImpl) logBulkDelete(ctx context.Context, deleted []string) {
	s.activityLog.Append(
		activitylog.ActionEmployeesBulkDeleted,
		fmt.Sprintf("%d employees deleted: %s", len(deleted), strings.Join(deleted, ", ")),
		activitylog.UserFromContext(ctx),
	)
}

func applyFilter(employees []employee.Employee, filter employee.EmployeeFilter) []employee.Employee {
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	department := strings.TrimSpace(filter.Department)

	filtered := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if query != "" &&
			!strings.Contains(strings.ToLower(emp.FullName), query) &&
			!strings.Contains(strings.ToLower(emp.EmployeeID), query) &&
			!strings.Contains(strings.ToLower(emp.Email), query) {
			continue
		}
		if department != "" && department != allDepartments && emp.Department != department {
			continue
		}
		filtered = append(filtered, emp)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a := strings.ToLower(sortValue(filtered[i], filter.SortBy))
		b := strings.ToLower(sortValue(filtered[j], filter.SortBy))
		if filter.SortOrder == employee.SortDesc {
			return a > b
		}
		return a < b
	})
	return filtered
}

func sortValue(emp employee.Employee, field employee.SortField) string {
	switch field {
	case employee.SortByEmployeeID:
		return emp.EmployeeID
	case employee.SortByDepartment:
		return emp.Department
	case employee.SortByEmail:
		return emp.Email
	case employee.SortByPosition:
		return emp.Position
	default:
		return emp.FullName
	}
}
