package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/upstream"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	HandleErrorWithData(w, err, nil)
}

// HandleErrorWithData maps err like HandleError and keeps data in the body,
// for operations that fail after doing part of their work.
func HandleErrorWithData(w http.ResponseWriter, err error, data interface{}) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		errorJSON(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", validationErrs.ToMap(), data)
		return
	}

	switch {
	// Request errors
	case errors.Is(err, analytics.ErrInvalidMonth):
		errorJSON(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", map[string]string{"month": err.Error()}, data)
	case errors.Is(err, employee.ErrNoEmployeesChosen):
		errorJSON(w, http.StatusBadRequest, "BAD_REQUEST", "No employees selected", nil, data)

	// Nothing to download
	case errors.Is(err, export.ErrNoData):
		slog.Info("Export requested with no data")
		NoContent(w)

	// Upstream answers
	case errors.Is(err, employee.ErrEmployeeNotFound):
		errorJSON(w, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil, data)
	case errors.Is(err, employee.ErrRejected), errors.Is(err, attendance.ErrRejected):
		errorJSON(w, http.StatusBadRequest, "BAD_REQUEST", upstream.UserMessage(err), nil, data)
	case errors.Is(err, upstream.ErrUnavailable):
		slog.Warn("HR API unavailable", "error", err)
		errorJSON(w, http.StatusBadGateway, "BAD_GATEWAY", "HR service is unavailable, please try again later", nil, data)
	case errors.Is(err, upstream.ErrRequestFailed), errors.Is(err, upstream.ErrMalformedResponse):
		slog.Error("HR API request failed", "error", err)
		errorJSON(w, http.StatusBadGateway, "BAD_GATEWAY", "HR service returned an unexpected response", nil, data)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		errorJSON(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil, data)
	}
}
