package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	employee.Service
	ListFn     func(ctx context.Context, scope string, f employee.Filter) (upstream.Page[employee.Employee], querycache.Meta, error)
	UpdateMeFn func(ctx context.Context, scope string, req employee.UpdateProfileRequest) (employee.Employee, error)
}

func (f *fakeEmployeeService) List(ctx context.Context, scope string, fl employee.Filter) (upstream.Page[employee.Employee], querycache.Meta, error) {
	return f.ListFn(ctx, scope, fl)
}

func (f *fakeEmployeeService) UpdateMe(ctx context.Context, scope string, req employee.UpdateProfileRequest) (employee.Employee, error) {
	return f.UpdateMeFn(ctx, scope, req)
}

func newEmployeeRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := employee.NewHandler(svc)
	withUser := func(c *gin.Context) { c.Set("user_id", "7") }
	r.GET("/employees", withUser, h.List)
	r.PATCH("/employees/me", withUser, h.UpdateMe)
	r.GET("/employees/:id/:section", withUser, h.Section)
	return r
}

func TestEmployeeHandler_List(t *testing.T) {
	var got employee.Filter
	svc := &fakeEmployeeService{
		ListFn: func(ctx context.Context, scope string, f employee.Filter) (upstream.Page[employee.Employee], querycache.Meta, error) {
			assert.Equal(t, "7", scope)
			got = f
			return upstream.Page[employee.Employee]{Count: 1, Results: []employee.Employee{{ID: "3", FirstName: "Ravi"}}},
				querycache.Meta{FromCache: true}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees?search=ravi&page=2", nil)
	newEmployeeRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ravi", got.Search)
	assert.Equal(t, 2, got.Page)

	var body struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
		Cache struct {
			FromCache bool `json:"from_cache"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, 1, body.Meta.Total)
	assert.True(t, body.Cache.FromCache)
}

func TestEmployeeHandler_UpdateMe_UpstreamRejects(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateMeFn: func(ctx context.Context, scope string, req employee.UpdateProfileRequest) (employee.Employee, error) {
			return employee.Employee{}, &upstream.Error{Status: http.StatusBadRequest, Body: []byte(`{"phone":["invalid"]}`)}
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/employees/me", strings.NewReader(`{"phone":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	newEmployeeRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
	assert.Contains(t, w.Body.String(), "invalid")
}

func TestEmployeeHandler_UnknownSection(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/employees/7/salary", nil)
	newEmployeeRouter(&fakeEmployeeService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
