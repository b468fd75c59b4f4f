package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/percent"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record is one attendance mark for one employee on one calendar date.
type Record struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

// Day returns the record's calendar date in loc. Dates carrying a time
// component keep only their own calendar day.
func (r Record) Day(loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", r.Date, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}
	if len(r.Date) > 10 {
		if t, err := time.ParseInLocation("2006-01-02", r.Date[:10], loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summary is the present/absent breakdown of a record list
type Summary struct {
	Present              int    `json:"present"`
	Absent               int    `json:"absent"`
	Total                int    `json:"total"`
	AttendancePercentage string `json:"attendance_percentage"`
}

// CountStatuses counts Present and Absent marks; other statuses are ignored.
func CountStatuses(records []Record) (present, absent int) {
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			present++
		case StatusAbsent:
			absent++
		}
	}
	return present, absent
}

// Summarize reports the share of Present marks among all records.
func Summarize(records []Record) Summary {
	present, absent := CountStatuses(records)
	return Summary{
		Present:              present,
		Absent:               absent,
		Total:                len(records),
		AttendancePercentage: percent.Format(present, len(records), 1),
	}
}

// FetchFailure names an employee whose attendance could not be fetched.
type FetchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// Collection is the settled result of fetching attendance for a set of
// employees. Every requested employee has an entry in ByEmployee; failed
// fetches map to an empty slice and are listed in Failed.
type Collection struct {
	ByEmployee map[string][]Record
	Failed     []FetchFailure
}

func (c Collection) FailedIDs() []string {
	ids := make([]string, 0, len(c.Failed))
	for _, f := range c.Failed {
		ids = append(ids, f.EmployeeID)
	}
	return ids
}

// SortNewestFirst orders records by calendar date, newest first. Records
// with equal or unparseable dates keep their relative order; unparseable
// dates sort last.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		di, okI := records[i].Day(time.UTC)
		dj, okJ := records[j].Day(time.UTC)
		if okI != okJ {
			return okI
		}
		return di.After(dj)
	})
}
