package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

const csvContentType = "text/csv; charset=utf-8"

type AttendanceHandler interface {
	RecordAttendance(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)

	// Timeline across all employees or one (?employee_id=)
	GetTimeline(w http.ResponseWriter, r *http.Request)
	ExportTimeline(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	analyticsService  analytics.AnalyticsService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, analyticsService analytics.AnalyticsService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		analyticsService:  analyticsService,
	}
}

// RecordAttendance handles POST /attendance
func (h *attendanceHandlerImpl) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.attendanceService.RecordAttendance(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", nil)
}

// GetEmployeeAttendance handles GET /attendance/{employeeID}
func (h *attendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetTimeline handles GET /attendance
func (h *attendanceHandlerImpl) GetTimeline(w http.ResponseWriter, r *http.Request) {
	req := analytics.TimelineRequest{EmployeeID: r.URL.Query().Get("employee_id")}

	result, err := h.analyticsService.GetTimeline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ExportTimeline handles GET /attendance/export
func (h *attendanceHandlerImpl) ExportTimeline(w http.ResponseWriter, r *http.Request) {
	req := analytics.TimelineRequest{EmployeeID: r.URL.Query().Get("employee_id")}

	result, err := h.analyticsService.GetTimeline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := export.RowsFrom(result.Records)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rows); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s.csv", time.Now().Format("2006-01-02"))
	response.Attachment(w, csvContentType, filename, buf.Bytes())
}
