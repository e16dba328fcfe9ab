package holiday_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/holiday"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream/upstreamtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHolidayService_List(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	cache := querycache.New(querycache.NewMemoryStore(), querycache.WithClock(func() time.Time { return now }))
	api := upstreamtest.New()
	fail := false
	api.On(http.MethodGet, "/hr/holidays/", func(call upstreamtest.Call) ([]byte, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		assert.Equal(t, "2026", call.Query.Get("year"))
		return []byte(`[{"id":1,"name":"Republic Day","date":"2026-01-26"}]`), nil
	})
	svc := holiday.NewService(api, cache, nil, zap.NewNop())
	ctx := context.Background()

	rows, _, err := svc.List(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Republic Day", rows[0].Name)

	now = now.Add(23 * time.Hour)
	_, meta, err := svc.List(ctx, 2026)
	require.NoError(t, err)
	assert.True(t, meta.FromCache)
	assert.Equal(t, 1, api.Count(http.MethodGet, "/hr/holidays/"))

	t.Run("stale while error after the window", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		fail = true

		rows, meta, err := svc.List(ctx, 2026)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.True(t, meta.Stale)
		assert.Error(t, meta.Err)
	})

	t.Run("unscoped entry survives logout", func(t *testing.T) {
		_, err := cache.RemoveScope(ctx, "7")
		require.NoError(t, err)
		st, err := cache.State(ctx, querycache.NewKey("holidays", "2026"))
		require.NoError(t, err)
		assert.NotEqual(t, querycache.StatusIdle, st.Status)
	})
}
