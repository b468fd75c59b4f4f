package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/activitylog"
	"github.com/stretchr/testify/assert"
)

func TestActor(t *testing.T) {
	var got string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = activitylog.UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserHeader, " hr-admin ")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "hr-admin", got)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, activitylog.SystemUser, got)
}
