package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler interface {
	// Global attendance analytics
	GetGlobalAnalytics(w http.ResponseWriter, r *http.Request)

	// Monthly Attendance Report
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// GetGlobalAnalytics handles GET /analytics
func (h *analyticsHandlerImpl) GetGlobalAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetGlobalAnalytics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMonthlyReport handles GET /reports/monthly
func (h *analyticsHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := analytics.MonthlyReportRequest{Month: r.URL.Query().Get("month")}

	result, err := h.analyticsService.GenerateMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ExportMonthlyReport handles GET /reports/monthly/export?format=csv|xlsx
func (h *analyticsHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		response.BadRequest(w, "format must be csv or xlsx", nil)
		return
	}

	req := analytics.MonthlyReportRequest{Month: r.URL.Query().Get("month")}
	result, err := h.analyticsService.GenerateMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := export.RowsFrom(result.EmployeeRecords)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	filename := fmt.Sprintf("monthly-report-%s.%s", result.Month, format)
	switch format {
	case "xlsx":
		title := fmt.Sprintf("Monthly Attendance Report - %s", result.MonthName)
		if err := export.WriteXLSX(&buf, "Monthly Report", title, rows); err != nil {
			response.HandleError(w, err)
			return
		}
		response.Attachment(w, xlsxContentType, filename, buf.Bytes())
	default:
		if err := export.WriteCSV(&buf, rows); err != nil {
			response.HandleError(w, err)
			return
		}
		response.Attachment(w, csvContentType, filename, buf.Bytes())
	}
}
