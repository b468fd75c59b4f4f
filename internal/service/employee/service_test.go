package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	listErr   error
	createErr error
	deleteErr map[string]error
	created   []employee.CreateEmployeeRequest
	deleted   []string
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.listErr
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, req employee.CreateEmployeeRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	if err := f.deleteErr[employeeID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, employeeID)
	return nil
}

func sampleEmployees() []employee.Employee {
	return []employee.Employee{
		{EmployeeID: "E3", FullName: "carol King", Email: "carol@acme.io", Department: "Sales", Position: "Rep"},
		{EmployeeID: "E1", FullName: "Alice Smith", Email: "alice@acme.io", Department: "Eng", Position: "Dev"},
		{EmployeeID: "E2", FullName: "Bob Stone", Email: "bob@acme.io", Department: "Eng", Position: "Lead"},
		{EmployeeID: "E4", FullName: "Dave Hill", Email: "dave@other.io", Department: "Ops"},
	}
}

func ids(employees []employee.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.EmployeeID)
	}
	return out
}

func TestListEmployees_DefaultSortIsCaseInsensitiveName(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{employees: sampleEmployees()}, activitylog.New(10))

	got, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"E1", "E2", "E3", "E4"}, ids(got.Employees))
	assert.Equal(t, int64(4), got.TotalCount)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 10, got.Limit)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, "1-4 of 4", got.Showing)
}

func TestListEmployees_SearchDepartmentAndSort(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{employees: sampleEmployees()}, activitylog.New(10))

	cases := []struct {
		name   string
		filter employee.EmployeeFilter
		want   []string
	}{
		{"search by name", employee.EmployeeFilter{Search: "ST"}, []string{"E2"}},
		{"search by email", employee.EmployeeFilter{Search: "acme.io"}, []string{"E1", "E2", "E3"}},
		{"search by id", employee.EmployeeFilter{Search: "e4"}, []string{"E4"}},
		{"department", employee.EmployeeFilter{Department: "Eng"}, []string{"E1", "E2"}},
		{"all departments", employee.EmployeeFilter{Department: "all"}, []string{"E1", "E2", "E3", "E4"}},
		{"sort by id desc", employee.EmployeeFilter{SortBy: employee.SortByEmployeeID, SortOrder: employee.SortDesc}, []string{"E4", "E3", "E2", "E1"}},
		{"sort by department keeps ties stable", employee.EmployeeFilter{SortBy: employee.SortByDepartment}, []string{"E1", "E2", "E4", "E3"}},
		{"no match", employee.EmployeeFilter{Search: "zzz"}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := svc.ListEmployees(context.Background(), c.filter)
			require.NoError(t, err)
			assert.Equal(t, c.want, ids(got.Employees))
		})
	}
}

func TestListEmployees_Pagination(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{employees: sampleEmployees()}, activitylog.New(10))

	got, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"E4"}, ids(got.Employees))
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, "4-4 of 4", got.Showing)

	got, err = svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: 5, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, got.Employees)
	assert.Equal(t, "0 of 4", got.Showing)
}

func TestListEmployees_InvalidFilter(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{}, activitylog.New(10))

	_, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{SortBy: "salary", SortOrder: "up", Limit: 500})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "sort")
	assert.Contains(t, fields, "order")
	assert.Contains(t, fields, "limit")
}

func TestFilterEmployees_ListError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewEmployeeService(&fakeEmployeeRepo{listErr: boom}, activitylog.New(10))

	_, err := svc.FilterEmployees(context.Background(), employee.EmployeeFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestDepartments(t *testing.T) {
	employees := append(sampleEmployees(), employee.Employee{EmployeeID: "E5", Department: "Eng"}, employee.Employee{EmployeeID: "E6"})
	svc := NewEmployeeService(&fakeEmployeeRepo{employees: employees}, activitylog.New(10))

	got, err := svc.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "Eng", "Ops"}, got)
}

func TestCreateEmployee(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	log := activitylog.New(10)
	svc := NewEmployeeService(repo, log)

	err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeID: "E7",
		FullName:   " Grace Hopper ",
		Email:      "grace@acme.io",
		Department: "Eng",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Grace Hopper", repo.created[0].FullName)
	entries := log.List(0)
	require.Len(t, entries, 1)
	assert.Equal(t, activitylog.ActionEmployeeAdded, entries[0].Action)
	assert.Equal(t, "Grace Hopper (E7) joined Eng", entries[0].Details)
}

func TestCreateEmployee_ValidationError(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo, activitylog.New(10))

	err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{FullName: "Al", Email: "nope", Phone: "abc"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	for _, field := range []string{"employee_id", "full_name", "email", "phone", "department"} {
		assert.Contains(t, fields, field)
	}
	assert.Empty(t, repo.created)
}

func TestCreateEmployee_RejectedUpstream(t *testing.T) {
	repo := &fakeEmployeeRepo{createErr: employee.ErrRejected}
	log := activitylog.New(10)
	svc := NewEmployeeService(repo, log)

	err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Alice Smith", Email: "alice@acme.io", Department: "Eng",
	})
	assert.ErrorIs(t, err, employee.ErrRejected)
	assert.Empty(t, log.List(0))
}

func TestDeleteEmployee(t *testing.T) {
	repo := &fakeEmployeeRepo{deleteErr: map[string]error{"E404": employee.ErrEmployeeNotFound}}
	log := activitylog.New(10)
	svc := NewEmployeeService(repo, log)

	require.NoError(t, svc.DeleteEmployee(context.Background(), "E1"))
	assert.Equal(t, []string{"E1"}, repo.deleted)
	assert.Equal(t, activitylog.ActionEmployeeDeleted, log.List(1)[0].Action)

	err := svc.DeleteEmployee(context.Background(), "E404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	err = svc.DeleteEmployee(context.Background(), " ")
	assert.ErrorIs(t, err, employee.ErrNoEmployeesChosen)
}

func TestBulkDeleteEmployees(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	log := activitylog.New(10)
	svc := NewEmployeeService(repo, log)

	got, err := svc.BulkDeleteEmployees(context.Background(), employee.BulkDeleteRequest{EmployeeIDs: []string{"E1", "E2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"E1", "E2"}, got.Deleted)
	assert.Equal(t, "2 employees deleted: E1, E2", log.List(1)[0].Details)
}

func TestBulkDeleteEmployees_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeEmployeeRepo{deleteErr: map[string]error{"E2": boom}}
	svc := NewEmployeeService(repo, activitylog.New(10))

	got, err := svc.BulkDeleteEmployees(context.Background(), employee.BulkDeleteRequest{EmployeeIDs: []string{"E1", "E2", "E3"}})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"E1"}, got.Deleted)
	assert.Equal(t, []string{"E1"}, repo.deleted)
}

func TestBulkDeleteEmployees_Validation(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{}, activitylog.New(10))

	_, err := svc.BulkDeleteEmployees(context.Background(), employee.BulkDeleteRequest{})
	assert.ErrorIs(t, err, employee.ErrNoEmployeesChosen)

	_, err = svc.BulkDeleteEmployees(context.Background(), employee.BulkDeleteRequest{EmployeeIDs: []string{"E1", ""}})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
