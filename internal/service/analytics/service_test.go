package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	attendanceservice "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, req employee.CreateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	return nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string][]attendance.Record
	errs    map[string]error
	calls   []string
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, employeeID)
	if err := f.errs[employeeID]; err != nil {
		return nil, err
	}
	return f.records[employeeID], nil
}

func (f *fakeAttendanceRepo) Record(ctx context.Context, req attendance.RecordAttendanceRequest) error {
	return nil
}

func newTestService(employees []employee.Employee, records map[string][]attendance.Record, errs map[string]error) (*AnalyticsServiceImpl, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{records: records, errs: errs}
	fetcher := attendanceservice.NewFetcher(attendanceRepo, 4, time.Second, nil)
	svc := NewAnalyticsService(&fakeEmployeeRepo{employees: employees}, fetcher).(*AnalyticsServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC) }
	return svc, attendanceRepo
}

func TestGetGlobalAnalytics(t *testing.T) {
	employees, byEmployee := scenario()
	svc, _ := newTestService(employees, byEmployee, nil)

	got, err := svc.GetGlobalAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ComputeGlobalAnalytics(employees, byEmployee), got.AggregatedStats)
	assert.Equal(t, "2024-01-20T08:00:00Z", got.GeneratedAt)
	assert.False(t, got.Degraded)
	assert.Empty(t, got.FailedEmployeeIDs)
}

func TestGetGlobalAnalytics_IsolatesFailedEmployee(t *testing.T) {
	employees, byEmployee := scenario()
	employees = append(employees, emp("E3", "Carol", "Ops"))
	byEmployee["E3"] = []attendance.Record{rec("E3", "2024-01-02", attendance.StatusAbsent)}
	svc, _ := newTestService(employees, byEmployee, map[string]error{"E3": errors.New("connection reset")})

	got, err := svc.GetGlobalAnalytics(context.Background())
	require.NoError(t, err)

	assert.True(t, got.Degraded)
	assert.Equal(t, []string{"E3"}, got.FailedEmployeeIDs)
	assert.Equal(t, 2, got.TotalPresent)
	assert.Equal(t, 2, got.TotalAbsent)
	assert.Equal(t, "50.0", got.AttendancePercentage)
	assert.Equal(t, analytics.DepartmentStats{Rate: "0"}, got.DepartmentStats["Ops"])
}

func TestGetGlobalAnalytics_EmployeeListFailure(t *testing.T) {
	boom := errors.New("HR API unavailable")
	attendanceRepo := &fakeAttendanceRepo{}
	svc := NewAnalyticsService(&fakeEmployeeRepo{err: boom}, attendanceservice.NewFetcher(attendanceRepo, 4, time.Second, nil))

	_, err := svc.GetGlobalAnalytics(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, attendanceRepo.calls)
}

func TestGenerateMonthlyReport(t *testing.T) {
	employees, byEmployee := scenario()
	svc, _ := newTestService(employees, byEmployee, nil)

	got, err := svc.GenerateMonthlyReport(context.Background(), analytics.MonthlyReportRequest{Month: "2024-01"})
	require.NoError(t, err)

	assert.Equal(t, "January 2024", got.MonthName)
	assert.Len(t, got.EmployeeRecords, 2)
	assert.Equal(t, 2, got.Summary.TotalEmployees)
	assert.Equal(t, "50.0", got.Summary.AverageAttendance)
	assert.False(t, got.Degraded)
}

func TestGenerateMonthlyReport_DefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	got, err := svc.GenerateMonthlyReport(context.Background(), analytics.MonthlyReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01"), got.Month)
}

func TestGenerateMonthlyReport_InvalidMonth(t *testing.T) {
	svc, attendanceRepo := newTestService([]employee.Employee{emp("E1", "Alice", "Eng")}, nil, nil)

	_, err := svc.GenerateMonthlyReport(context.Background(), analytics.MonthlyReportRequest{Month: "2024-1"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
	assert.Empty(t, attendanceRepo.calls)
}

func TestGenerateMonthlyReport_EmployeeListFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAnalyticsService(&fakeEmployeeRepo{err: boom}, attendanceservice.NewFetcher(&fakeAttendanceRepo{}, 1, time.Second, nil))

	_, err := svc.GenerateMonthlyReport(context.Background(), analytics.MonthlyReportRequest{Month: "2024-01"})
	assert.ErrorIs(t, err, analytics.ErrReportGenerationFailed)
	assert.ErrorIs(t, err, boom)
}

func TestGetTimeline(t *testing.T) {
	employees, byEmployee := scenario()
	svc, attendanceRepo := newTestService(employees, byEmployee, nil)

	all, err := svc.GetTimeline(context.Background(), analytics.TimelineRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Records, 4)
	assert.Equal(t, "2024-01-04", all.Records[0].Date)

	attendanceRepo.calls = nil
	one, err := svc.GetTimeline(context.Background(), analytics.TimelineRequest{EmployeeID: " E1 "})
	require.NoError(t, err)
	assert.Equal(t, "E1", one.EmployeeID)
	assert.Len(t, one.Records, 3)
	assert.Equal(t, []string{"E1"}, attendanceRepo.calls)
}

func TestGetTimeline_FailedEmployee(t *testing.T) {
	svc, _ := newTestService(nil, nil, map[string]error{"E1": errors.New("boom")})

	got, err := svc.GetTimeline(context.Background(), analytics.TimelineRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	assert.True(t, got.Degraded)
	assert.Equal(t, []string{"E1"}, got.FailedEmployeeIDs)
	assert.Empty(t, got.Records)
}
