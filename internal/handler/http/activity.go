package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
)

type ActivityHandler interface {
	ListActivity(w http.ResponseWriter, r *http.Request)
	ClearActivity(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityLog *activitylog.Log
}

func NewActivityHandler(activityLog *activitylog.Log) ActivityHandler {
	return &activityHandlerImpl{
		activityLog: activityLog,
	}
}

// ListActivity handles GET /activity
func (h *activityHandlerImpl) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := activitylog.DefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "limit must be a positive number", nil)
			return
		}
		limit = parsed
	}

	response.Success(w, h.activityLog.List(limit))
}

// ClearActivity handles DELETE /activity
func (h *activityHandlerImpl) ClearActivity(w http.ResponseWriter, r *http.Request) {
	h.activityLog.Clear()
	response.SuccessWithMessage(w, "Activity log cleared", nil)
}
