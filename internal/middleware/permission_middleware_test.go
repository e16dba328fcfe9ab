package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStores map[string]*permission.Store

func (f fakeStores) Store(sessionID string) *permission.Store {
	if st, ok := f[sessionID]; ok {
		return st
	}
	st, _ := permission.NewStore()
	return st
}

func newStore(t *testing.T, role string, perms ...string) *permission.Store {
	t.Helper()
	st, err := permission.NewStore()
	require.NoError(t, err)
	require.NoError(t, st.Load(permission.Snapshot{Permissions: perms, Role: role}))
	return st
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stores := fakeStores{
		"reviewer": newStore(t, "hr", permission.TokenLeaveApprove),
		"staff":    newStore(t, "employee", permission.TokenLeaveViewAll),
		"admin":    newStore(t, "admin"),
	}

	tests := []struct {
		name    string
		session string
		want    int
	}{
		{"holds one of the tokens", "reviewer", http.StatusOK},
		{"holds none of the tokens", "staff", http.StatusForbidden},
		{"admin bypass", "admin", http.StatusOK},
		{"unknown session denied", "ghost", http.StatusForbidden},
		{"no session", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/leaves/:id/approve",
				func(c *gin.Context) {
					if tt.session != "" {
						c.Set("session_id", tt.session)
					}
					c.Next()
				},
				middleware.RequirePermission(stores, permission.TokenLeaveApprove, permission.TokenLeaveReject),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/approve", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
