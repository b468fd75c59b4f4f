package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
)

type AnalyticsServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fetcher      attendance.Fetcher
	now          func() time.Time
}

func NewAnalyticsService(employeeRepo employee.EmployeeRepository, fetcher attendance.Fetcher) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{
		employeeRepo: employeeRepo,
		fetcher:      fetcher,
		now:          time.Now,
	}
}

// collect lists employees and fetches their attendance. Only the employee
// list can fail; per-employee failures are reported in the collection.
func (s *AnalyticsServiceImpl) collect(ctx context.Context) ([]employee.Employee, attendance.Collection, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, attendance.Collection{}, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, s.fetcher.Fetch(ctx, employees), nil
}

// GetGlobalAnalytics implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetGlobalAnalytics(ctx context.Context) (analytics.GlobalAnalyticsResponse, error) {
	employees, collection, err := s.collect(ctx)
	if err != nil {
		return analytics.GlobalAnalyticsResponse{}, err
	}

	return analytics.GlobalAnalyticsResponse{
		AggregatedStats:   ComputeGlobalAnalytics(employees, collection.ByEmployee),
		GeneratedAt:       s.now().Format(time.RFC3339),
		Degraded:          len(collection.Failed) > 0,
		FailedEmployeeIDs: collection.FailedIDs(),
	}, nil
}

// GenerateMonthlyReport implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GenerateMonthlyReport(ctx context.Context, req analytics.MonthlyReportRequest) (analytics.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return analytics.MonthlyReportResponse{}, err
	}

	employees, collection, err := s.collect(ctx)
	if err != nil {
		return analytics.MonthlyReportResponse{}, fmt.Errorf("%w: %w", analytics.ErrReportGenerationFailed, err)
	}

	report, err := ComputeMonthlyReport(employees, collection.ByEmployee, req.Month)
	if err != nil {
		return analytics.MonthlyReportResponse{}, err
	}

	return analytics.MonthlyReportResponse{
		MonthlyReport:     report,
		GeneratedAt:       s.now().Format(time.RFC3339),
		Degraded:          len(collection.Failed) > 0,
		FailedEmployeeIDs: collection.FailedIDs(),
	}, nil
}

// GetTimeline implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetTimeline(ctx context.Context, req analytics.TimelineRequest) (analytics.TimelineResponse, error) {
	employeeID := strings.TrimSpace(req.EmployeeID)

	var (
		employees  []employee.Employee
		collection attendance.Collection
		err        error
	)
	if employeeID != "" {
		employees = []employee.Employee{{EmployeeID: employeeID}}
		collection = s.fetcher.Fetch(ctx, employees)
	} else {
		employees, collection, err = s.collect(ctx)
		if err != nil {
			return analytics.TimelineResponse{}, err
		}
	}

	return analytics.TimelineResponse{
		Timeline:          BuildTimeline(employees, collection.ByEmployee, employeeID),
		Degraded:          len(collection.Failed) > 0,
		FailedEmployeeIDs: collection.FailedIDs(),
	}, nil
}
