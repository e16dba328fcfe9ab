package leave

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	leaveerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream/upstreamtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type leaveFixture struct {
	api   *upstreamtest.Fake
	cache *querycache.Cache
	clock *testClock
	svc   Service
}

func setupLeaveService(t *testing.T) *leaveFixture {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	cache := querycache.New(querycache.NewMemoryStore(), querycache.WithClock(clock.Now))
	inv := querycache.NewInvalidator(cache, nil, zap.NewNop())
	api := upstreamtest.New()

	api.On(http.MethodGet, leavesPath, func(call upstreamtest.Call) ([]byte, error) {
		rows := []map[string]any{
			{"id": 1, "employee": 7, "status": "pending", "leave_type": "annual"},
			{"id": 2, "employee": 9, "status": "approved", "leave_type": "sick"},
		}
		if st := call.Query.Get("status"); st != "" {
			filtered := rows[:0:0]
			for _, r := range rows {
				if r["status"] == st {
					filtered = append(filtered, r)
				}
			}
			rows = filtered
		}
		return json.Marshal(map[string]any{"count": len(rows), "results": rows})
	})
	api.JSON(http.MethodGet, "/hr/leaves/9/", map[string]any{"id": 9, "employee": 7, "status": "pending"})
	api.JSON(http.MethodGet, "/hr/leaves/10/", map[string]any{"id": 10, "employee": 8, "status": "pending"})
	api.JSON(http.MethodGet, teamPath, []map[string]any{{"id": 9, "employee": 7}})
	api.JSON(http.MethodGet, upcomingPath, []map[string]any{{"id": 9, "employee": 7}})
	api.JSON(http.MethodGet, balancePath, []map[string]any{
		{"leave_type": "annual", "total": 18, "used": 4, "planned": 2.5},
	})
	api.Raw(http.MethodGet, statisticsPath, `{"pending":1,"approved":1}`)
	api.Raw(http.MethodGet, calendarPath, `{"days":[]}`)

	return &leaveFixture{
		api:   api,
		cache: cache,
		clock: clock,
		svc:   NewService(api, inv, querycache.DefaultPolicy(), zap.NewNop()),
	}
}

// warm reads every leave resource once and returns the keys it cached
// together with a holidays entry that no leave mutation may touch.
func (fx *leaveFixture) warm(t *testing.T, scope string) map[string]querycache.Key {
	t.Helper()
	ctx := context.Background()

	_, _, err := fx.svc.List(ctx, scope, Filter{})
	require.NoError(t, err)
	_, _, err = fx.svc.Approvals(ctx, scope, Filter{})
	require.NoError(t, err)
	_, _, err = fx.svc.Detail(ctx, scope, "9")
	require.NoError(t, err)
	_, _, err = fx.svc.Detail(ctx, scope, "10")
	require.NoError(t, err)
	_, _, err = fx.svc.Balance(ctx, scope, "7", 2026)
	require.NoError(t, err)
	_, _, err = fx.svc.Balance(ctx, scope, "8", 2026)
	require.NoError(t, err)
	_, _, err = fx.svc.Statistics(ctx, scope)
	require.NoError(t, err)
	_, _, err = fx.svc.Upcoming(ctx, scope)
	require.NoError(t, err)
	_, _, err = fx.svc.Team(ctx, scope)
	require.NoError(t, err)
	_, _, err = fx.svc.Calendar(ctx, scope, 2026, 3)
	require.NoError(t, err)

	holidays := querycache.NewKey("holidays", "2026")
	_, _, err = fx.cache.Query(ctx, holidays, 24*time.Hour, func(context.Context) ([]byte, error) {
		return []byte(`[]`), nil
	})
	require.NoError(t, err)

	return map[string]querycache.Key{
		"list":       listKey(scope, Filter{}),
		"approvals":  listKey(scope, Filter{}.ForApprovals()),
		"detail_9":   detailKey(scope, "9"),
		"detail_10":  detailKey(scope, "10"),
		"balance_7":  balanceKey(scope, "7", 2026),
		"balance_8":  balanceKey(scope, "8", 2026),
		"statistics": singletonKey(scope, "statistics"),
		"upcoming":   singletonKey(scope, "upcoming"),
		"team":       singletonKey(scope, "team"),
		"calendar":   calendarKey(scope, 2026, 3),
		"holidays":   holidays,
	}
}

func (fx *leaveFixture) invalidated(t *testing.T, keys map[string]querycache.Key) map[string]bool {
	t.Helper()
	out := make(map[string]bool, len(keys))
	for name, k := range keys {
		st, err := fx.cache.State(context.Background(), k)
		require.NoError(t, err)
		require.Equal(t, querycache.StatusSuccess, st.Status, name)
		out[name] = st.Invalidated
	}
	return out
}

func TestLeaveService_ReviewFanOut(t *testing.T) {
	for action, status := range map[string]string{"approve": StatusApproved, "reject": StatusRejected} {
		t.Run(action, func(t *testing.T) {
			fx := setupLeaveService(t)
			keys := fx.warm(t, "7")
			fx.api.JSON(http.MethodPost, "/hr/leaves/9/"+action+"/",
				map[string]any{"id": 9, "employee": map[string]any{"id": 7, "name": "Asha"}, "status": status})

			var err error
			if action == "approve" {
				_, err = fx.svc.Approve(context.Background(), "9", ApproveRequest{})
			} else {
				_, err = fx.svc.Reject(context.Background(), "9", RejectRequest{Reason: "overlap"})
			}
			require.NoError(t, err)

			assert.Equal(t, map[string]bool{
				"list":       true,
				"approvals":  true,
				"detail_9":   true,
				"detail_10":  false,
				"balance_7":  true,
				"balance_8":  false,
				"statistics": true,
				"upcoming":   true,
				"team":       true,
				"calendar":   false,
				"holidays":   false,
			}, fx.invalidated(t, keys))
		})
	}
}

func TestLeaveService_FanOutWithoutRequester(t *testing.T) {
	fx := setupLeaveService(t)
	keys := fx.warm(t, "7")
	fx.api.JSON(http.MethodPost, "/hr/leaves/9/cancel/", map[string]any{"id": 9, "status": "cancelled"})

	_, err := fx.svc.Cancel(context.Background(), "9")
	require.NoError(t, err)

	got := fx.invalidated(t, keys)
	assert.True(t, got["balance_7"])
	assert.True(t, got["balance_8"])
	assert.True(t, got["calendar"])
	assert.False(t, got["detail_10"])
	assert.False(t, got["holidays"])
}

func TestLeaveService_IdempotentApprove(t *testing.T) {
	fx := setupLeaveService(t)
	keys := fx.warm(t, "7")
	fx.api.JSON(http.MethodPost, "/hr/leaves/9/approve/", map[string]any{"id": 9, "employee": 7, "status": "approved"})
	ctx := context.Background()

	_, err := fx.svc.Approve(ctx, "9", ApproveRequest{})
	require.NoError(t, err)

	before := make(map[string]querycache.State, len(keys))
	for name, k := range keys {
		before[name], err = fx.cache.State(ctx, k)
		require.NoError(t, err)
	}

	fx.clock.Advance(time.Second)
	second, err := fx.svc.Approve(ctx, "9", ApproveRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, second.Status)

	for name, k := range keys {
		after, err := fx.cache.State(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, before[name], after, name)
	}
	assert.Equal(t, 2, fx.api.Count(http.MethodPost, "/hr/leaves/9/approve/"))
}

func TestLeaveService_FailedMutationTouchesNothing(t *testing.T) {
	fx := setupLeaveService(t)
	keys := fx.warm(t, "7")
	fx.api.Fail(http.MethodPost, "/hr/leaves/9/approve/", http.StatusBadRequest)

	_, err := fx.svc.Approve(context.Background(), "9", ApproveRequest{})
	require.Error(t, err)

	for name, v := range fx.invalidated(t, keys) {
		assert.False(t, v, name)
	}
}

func TestLeaveService_ApprovalsDefaultFilter(t *testing.T) {
	fx := setupLeaveService(t)
	ctx := context.Background()

	page, _, err := fx.svc.Approvals(ctx, "7", Filter{})
	require.NoError(t, err)
	call, _ := fx.api.Last(http.MethodGet, leavesPath)
	assert.Equal(t, "pending", call.Query.Get("status"))
	require.Len(t, page.Results, 1)
	assert.Equal(t, StatusPending, page.Results[0].Status)

	page, _, err = fx.svc.Approvals(ctx, "7", Filter{Status: "Approved"})
	require.NoError(t, err)
	call, _ = fx.api.Last(http.MethodGet, leavesPath)
	assert.Equal(t, "approved", call.Query.Get("status"))
	require.Len(t, page.Results, 1)
	assert.Equal(t, StatusApproved, page.Results[0].Status)

	page, _, err = fx.svc.List(ctx, "7", Filter{})
	require.NoError(t, err)
	call, _ = fx.api.Last(http.MethodGet, leavesPath)
	assert.Empty(t, call.Query.Get("status"))
	assert.Len(t, page.Results, 2)
}

func TestLeaveService_ListStaleness(t *testing.T) {
	fx := setupLeaveService(t)
	ctx := context.Background()

	_, _, err := fx.svc.List(ctx, "7", Filter{})
	require.NoError(t, err)
	fx.clock.Advance(time.Minute)
	_, meta, err := fx.svc.List(ctx, "7", Filter{})
	require.NoError(t, err)
	assert.True(t, meta.FromCache)
	assert.Equal(t, 1, fx.api.Count(http.MethodGet, leavesPath))

	fx.clock.Advance(time.Minute + time.Second)
	_, meta, err = fx.svc.List(ctx, "7", Filter{})
	require.NoError(t, err)
	assert.False(t, meta.FromCache)
	assert.Equal(t, 2, fx.api.Count(http.MethodGet, leavesPath))
}

func TestLeaveService_Balance(t *testing.T) {
	fx := setupLeaveService(t)

	resp, _, err := fx.svc.Balance(context.Background(), "7", "7", 2026)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 11.5, resp.Items[0].Available)

	call, _ := fx.api.Last(http.MethodGet, balancePath)
	assert.Equal(t, "7", call.Query.Get("employee"))
	assert.Equal(t, "2026", call.Query.Get("year"))

	_, _, err = fx.svc.Balance(context.Background(), "7", "", 2026)
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeRequired)
}

func TestLeaveService_Create(t *testing.T) {
	t.Run("maps label to code", func(t *testing.T) {
		fx := setupLeaveService(t)
		fx.api.JSON(http.MethodPost, leavesPath, map[string]any{"id": 11, "employee": 7, "status": "pending", "leave_type": "sick"})

		created, err := fx.svc.Create(context.Background(), CreateRequest{
			LeaveType: "Sick Leave",
			StartDate: "2026-03-10",
			EndDate:   "2026-03-11",
		})
		require.NoError(t, err)
		assert.Equal(t, "11", created.ID.String())

		call, ok := fx.api.Last(http.MethodPost, leavesPath)
		require.True(t, ok)
		assert.Equal(t, "sick", call.Body.(createPayload).LeaveType)
	})

	t.Run("unmapped type", func(t *testing.T) {
		fx := setupLeaveService(t)
		_, err := fx.svc.Create(context.Background(), CreateRequest{LeaveType: "sabbatical", StartDate: "2026-03-10", EndDate: "2026-03-11"})
		assert.ErrorIs(t, err, leaveerrors.ErrUnknownLeaveType)
		assert.Zero(t, fx.api.Count(http.MethodPost, leavesPath))
	})

	t.Run("reversed dates", func(t *testing.T) {
		fx := setupLeaveService(t)
		_, err := fx.svc.Create(context.Background(), CreateRequest{LeaveType: "annual", StartDate: "2026-03-12", EndDate: "2026-03-11"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_RejectNeedsReason(t *testing.T) {
	fx := setupLeaveService(t)
	_, err := fx.svc.Reject(context.Background(), "9", RejectRequest{Reason: "  "})
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	assert.Zero(t, fx.api.Count(http.MethodPost, "/hr/leaves/9/reject/"))
}
