package employee_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee"
	employeeerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream/upstreamtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupEmployeeService(t *testing.T) (employee.Service, *upstreamtest.Fake, *querycache.Cache) {
	t.Helper()
	cache := querycache.New(querycache.NewMemoryStore())
	inv := querycache.NewInvalidator(cache, nil, zap.NewNop())
	api := upstreamtest.New()
	api.JSON(http.MethodGet, "/hr/auth/me/", map[string]any{"id": 7, "first_name": "Asha", "last_name": "Rao", "category": "employee"})
	api.JSON(http.MethodGet, "/hr/users/7/", map[string]any{"id": 7, "first_name": "Asha"})
	return employee.NewService(api, inv, nil, zap.NewNop()), api, cache
}

func TestEmployeeService_SectionNotFoundIsEmpty(t *testing.T) {
	svc, api, _ := setupEmployeeService(t)
	api.JSON(http.MethodGet, "/hr/users/7/skills/", []map[string]any{{"name": "Go"}})

	rows, _, err := svc.Section(context.Background(), "7", "7", employee.SectionEducation)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, _, err = svc.Section(context.Background(), "7", "7", employee.SectionSkills)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestEmployeeService_DetailNotFoundPropagates(t *testing.T) {
	svc, _, _ := setupEmployeeService(t)

	_, _, err := svc.Detail(context.Background(), "7", "404")
	require.Error(t, err)
	assert.True(t, upstream.IsNotFound(err))
}

func TestEmployeeService_SectionRejectsUnknown(t *testing.T) {
	svc, api, _ := setupEmployeeService(t)

	_, _, err := svc.Section(context.Background(), "7", "7", employee.Section("salary"))
	assert.ErrorIs(t, err, employeeerrors.ErrUnknownSection)
	assert.Empty(t, api.Calls())
}

func TestEmployeeService_UpdateMeInvalidates(t *testing.T) {
	svc, api, cache := setupEmployeeService(t)
	ctx := context.Background()
	api.JSON(http.MethodPatch, "/hr/auth/me/", map[string]any{"id": 7, "first_name": "Asha", "phone": "98200"})

	_, _, err := svc.Me(ctx, "7")
	require.NoError(t, err)
	_, _, err = svc.Detail(ctx, "7", "7")
	require.NoError(t, err)

	phone := "98200"
	updated, err := svc.UpdateMe(ctx, "7", employee.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "98200", updated.Phone)

	for _, k := range []querycache.Key{
		querycache.NewKey("employees", "me").Scoped("7"),
		querycache.NewKey("employees", "detail", "7").Scoped("7"),
	} {
		st, err := cache.State(ctx, k)
		require.NoError(t, err)
		assert.True(t, st.Invalidated, k.String())
	}

	_, _, err = svc.Me(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 2, api.Count(http.MethodGet, "/hr/auth/me/"))
}

func TestEmployeeService_UpdateMeEmpty(t *testing.T) {
	svc, api, _ := setupEmployeeService(t)

	_, err := svc.UpdateMe(context.Background(), "7", employee.UpdateProfileRequest{})
	assert.ErrorIs(t, err, employeeerrors.ErrEmptyProfileUpdate)
	assert.Zero(t, api.Count(http.MethodPatch, "/hr/auth/me/"))
}

func TestEmployeeService_Dashboard(t *testing.T) {
	svc, api, _ := setupEmployeeService(t)
	api.JSON(http.MethodGet, "/hr/users/7/goals/", map[string]any{
		"count":   1,
		"results": []map[string]any{{"title": "Ship v2"}},
	})

	resp, err := svc.Dashboard(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", resp.Profile.FullName())
	require.Len(t, resp.Sections, len(employee.Sections))
	assert.Len(t, resp.Sections[employee.SectionGoals], 1)
	assert.Empty(t, resp.Sections[employee.SectionProjects])
}

func TestEmployeeService_Dashboard_SectionFailure(t *testing.T) {
	svc, api, _ := setupEmployeeService(t)
	api.Fail(http.MethodGet, "/hr/users/7/performance/", http.StatusInternalServerError)

	_, err := svc.Dashboard(context.Background(), "7")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusOf(err))
}
