package analytics

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/percent"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

const topAbsenteeLimit = 5

// ComputeGlobalAnalytics aggregates attendance across employees. Employees
// missing from byEmployee count as having no records. A repeated
// employee_id is counted once.
func ComputeGlobalAnalytics(employees []employee.Employee, byEmployee map[string][]attendance.Record) analytics.AggregatedStats {
	stats := analytics.AggregatedStats{
		DepartmentStats: make(map[string]analytics.DepartmentStats),
		TopAbsentees:    []analytics.Absentee{},
	}

	var absentees []analytics.Absentee
	for _, emp := range uniqueEmployees(employees) {
		records := byEmployee[emp.EmployeeID]
		present, absent := attendance.CountStatuses(records)

		stats.TotalPresent += present
		stats.TotalAbsent += absent

		dept := stats.DepartmentStats[emp.Department]
		dept.Present += present
		dept.Absent += absent
		dept.Total += len(records)
		stats.DepartmentStats[emp.Department] = dept

		if absent > 0 {
			absentees = append(absentees, analytics.Absentee{
				EmployeeID:   emp.EmployeeID,
				EmployeeName: emp.FullName,
				AbsentCount:  absent,
			})
		}
	}

	for name, dept := range stats.DepartmentStats {
		dept.Rate = percent.Format(dept.Present, dept.Total, 0)
		stats.DepartmentStats[name] = dept
	}

	// ties keep employee list order
	sort.SliceStable(absentees, func(i, j int) bool {
		return absentees[i].AbsentCount > absentees[j].AbsentCount
	})
	if len(absentees) > topAbsenteeLimit {
		absentees = absentees[:topAbsenteeLimit]
	}
	stats.TopAbsentees = append(stats.TopAbsentees, absentees...)

	stats.TotalRecords = stats.TotalPresent + stats.TotalAbsent
	stats.AttendancePercentage = percent.Format(stats.TotalPresent, stats.TotalRecords, 1)
	return stats
}

// ComputeMonthlyReport builds the report for a "YYYY-MM" month. Only records
// dated inside the month, both ends inclusive, are counted; records whose
// date cannot be read are skipped.
func ComputeMonthlyReport(employees []employee.Employee, byEmployee map[string][]attendance.Record, yearMonth string) (analytics.MonthlyReport, error) {
	month, ok := validator.IsValidYearMonth(yearMonth)
	if !ok {
		return analytics.MonthlyReport{}, analytics.ErrInvalidMonth
	}

	periodStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, -1)

	unique := uniqueEmployees(employees)
	report := analytics.MonthlyReport{
		Month:           periodStart.Format("2006-01"),
		MonthName:       periodStart.Format("January 2006"),
		PeriodStart:     periodStart.Format("2006-01-02"),
		PeriodEnd:       periodEnd.Format("2006-01-02"),
		EmployeeRecords: []analytics.MonthlyEmployeeRecord{},
		Summary: analytics.MonthlySummary{
			TotalEmployees: len(unique),
		},
	}

	for _, emp := range unique {
		var present, absent, total int
		for _, r := range byEmployee[emp.EmployeeID] {
			day, ok := r.Day(time.Local)
			if !ok || day.Before(periodStart) || day.After(periodEnd) {
				continue
			}
			total++
			switch r.Status {
			case attendance.StatusPresent:
				present++
			case attendance.StatusAbsent:
				absent++
			}
		}
		if total == 0 {
			continue
		}

		report.EmployeeRecords = append(report.EmployeeRecords, analytics.MonthlyEmployeeRecord{
			EmployeeID: emp.EmployeeID,
			FullName:   emp.FullName,
			Department: emp.Department,
			Present:    present,
			Absent:     absent,
			Total:      total,
			Percentage: percent.Format(present, total, 1),
		})
		report.Summary.TotalRecords += total
		report.Summary.TotalPresent += present
		report.Summary.TotalAbsent += absent
	}

	report.Summary.AverageAttendance = percent.Format(report.Summary.TotalPresent, report.Summary.TotalRecords, 1)
	return report, nil
}

// BuildTimeline merges the records of every employee, or only employeeID's
// when set, newest date first.
func BuildTimeline(employees []employee.Employee, byEmployee map[string][]attendance.Record, employeeID string) analytics.Timeline {
	records := []attendance.Record{}
	if employeeID != "" {
		records = append(records, byEmployee[employeeID]...)
	} else {
		for _, emp := range uniqueEmployees(employees) {
			records = append(records, byEmployee[emp.EmployeeID]...)
		}
	}
	attendance.SortNewestFirst(records)

	return analytics.Timeline{
		EmployeeID: employeeID,
		Records:    records,
		Summary:    attendance.Summarize(records),
	}
}

func uniqueEmployees(employees []employee.Employee) []employee.Employee {
	seen := make(map[string]struct{}, len(employees))
	out := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if _, ok := seen[emp.EmployeeID]; ok {
			continue
		}
		seen[emp.EmployeeID] = struct{}{}
		out = append(out, emp)
	}
	return out
}
