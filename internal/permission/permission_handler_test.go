package permission_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

func newRouter(svc permission.Service, sessionID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if sessionID != "" {
			c.Set("session_id", sessionID)
		}
		c.Next()
	}
	permission.RegisterRoutes(r.Group("/api/v1"), permission.NewHandler(svc), auth)
	return r
}

func TestHandler_Get(t *testing.T) {
	svc := permission.NewService(nil, nil)
	require.NoError(t, svc.Restore("s1", permission.Snapshot{
		Permissions: []string{"leave:approve", "employees:view"},
		Role:        "manager",
	}))
	r := newRouter(svc, "s1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/permissions", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var body permission.PermissionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "manager", body.Role)
	assert.False(t, body.IsAdmin)
	assert.True(t, body.Flags.CanApproveLeave)
	assert.True(t, body.Flags.CanViewStaff)
	assert.False(t, body.Flags.CanReviewHires)
}

func TestHandler_Check(t *testing.T) {
	svc := permission.NewService(nil, nil)
	require.NoError(t, svc.Restore("s1", permission.Snapshot{Permissions: []string{"leave:approve"}}))
	r := newRouter(svc, "s1")

	tests := []struct {
		name    string
		body    string
		status  int
		allowed bool
	}{
		{"any", `{"tokens":["leave:approve","hire:review"]}`, http.StatusOK, true},
		{"all", `{"tokens":["leave:approve","hire:review"],"mode":"all"}`, http.StatusOK, false},
		{"empty", `{"tokens":[]}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/permissions/check", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			var body permission.CheckResponse
			require.NoError(t, json.Unmarshal(env.Data, &body))
			assert.Equal(t, tt.allowed, body.Allowed)
		})
	}
}

func TestHandler_NoSession(t *testing.T) {
	r := newRouter(permission.NewService(nil, nil), "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/permissions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
