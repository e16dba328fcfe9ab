package hire_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/hire"
	hireerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/hire/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream/upstreamtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupHireService(t *testing.T) (hire.Service, *upstreamtest.Fake, *querycache.Cache) {
	t.Helper()
	cache := querycache.New(querycache.NewMemoryStore())
	inv := querycache.NewInvalidator(cache, nil, zap.NewNop())
	api := upstreamtest.New()
	api.JSON(http.MethodGet, "/hr/hire/pending-approvals/", []map[string]any{
		{"id": 31, "first_name": "Meera", "last_name": "Iyer", "email": "meera@example.com", "status": "pending"},
	})
	api.JSON(http.MethodGet, "/hr/users/", []map[string]any{{"id": 7, "first_name": "Asha"}})
	return hire.NewService(api, inv, nil, zap.NewNop()), api, cache
}

func TestHireService_ReviewInvalidatesPendingAndEmployees(t *testing.T) {
	svc, api, cache := setupHireService(t)
	api.JSON(http.MethodPost, "/hr/hire/31/review/", map[string]any{"id": 31, "status": "approved"})
	ctx := context.Background()

	rows, _, err := svc.Pending(ctx, "7")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Meera", rows[0].FirstName)

	employeesKey := querycache.NewKey("employees", "list", "").Scoped("7")
	_, _, err = cache.Query(ctx, employeesKey, querycache.DefaultPolicy().MaxAge(querycache.ResourceEmployees),
		func(context.Context) ([]byte, error) { return []byte(`[]`), nil })
	require.NoError(t, err)

	out, err := svc.Review(ctx, "31", hire.ReviewRequest{Decision: hire.DecisionApprove})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":31,"status":"approved"}`, string(out))

	for _, key := range []querycache.Key{querycache.NewKey("hire", "pending").Scoped("7"), employeesKey} {
		st, err := cache.State(ctx, key)
		require.NoError(t, err)
		assert.True(t, st.Invalidated, key.String())
	}

	_, meta, err := svc.Pending(ctx, "7")
	require.NoError(t, err)
	assert.False(t, meta.FromCache)
	assert.Equal(t, 2, api.Count(http.MethodGet, "/hr/hire/pending-approvals/"))
}

func TestHireService_ReviewValidation(t *testing.T) {
	svc, api, _ := setupHireService(t)
	ctx := context.Background()

	_, err := svc.Review(ctx, "31", hire.ReviewRequest{Decision: hire.DecisionReject, Comment: "  "})
	assert.ErrorIs(t, err, hireerrors.ErrRejectionReasonRequired)

	_, err = svc.Review(ctx, "../31", hire.ReviewRequest{Decision: hire.DecisionApprove})
	assert.ErrorIs(t, err, hireerrors.ErrInvalidCandidateID)

	assert.Empty(t, api.Calls())
}

func TestHireService_Register(t *testing.T) {
	svc, api, _ := setupHireService(t)
	api.Raw(http.MethodPost, "/hr/hire/register/", `{"id":44}`)

	_, err := svc.Register(context.Background(), json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, hireerrors.ErrInvalidRegistration)

	out, err := svc.Register(context.Background(), json.RawMessage(` {"email":"meera@example.com"} `))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":44}`, string(out))

	call, ok := api.Last(http.MethodPost, "/hr/hire/register/")
	require.True(t, ok)
	assert.Equal(t, json.RawMessage(`{"email":"meera@example.com"}`), call.Body)
}

func TestHireHandler_VerifyOTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, api, _ := setupHireService(t)
	api.JSON(http.MethodPost, "/hr/hire/verify-otp/", map[string]any{"verified": true})

	r := gin.New()
	hire.RegisterRoutes(r.Group("/api/v1"), hire.NewHandler(svc, zap.NewNop()), func(c *gin.Context) { c.Next() }, nil)

	t.Run("bad otp rejected before upstream", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/hire/otp/verify", strings.NewReader(`{"email":"meera@example.com","otp":"12ab"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, api.Count(http.MethodPost, "/hr/hire/verify-otp/"))
	})

	t.Run("valid otp forwarded", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/hire/otp/verify", strings.NewReader(`{"email":"meera@example.com","otp":"123456"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"verified":true`)
		assert.Equal(t, 1, api.Count(http.MethodPost, "/hr/hire/verify-otp/"))
	})
}
