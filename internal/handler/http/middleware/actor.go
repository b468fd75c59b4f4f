package middleware

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
)

// UserHeader names the dashboard user performing the request
const UserHeader = "X-User-ID"

// Actor records the requesting user for the activity log.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(activitylog.WithUser(r.Context(), userID)))
	})
}
