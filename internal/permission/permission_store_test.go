package permission_test

import (
	"testing"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedStore(t *testing.T, role string, perms ...string) *permission.Store {
	t.Helper()
	st, err := permission.NewStore()
	require.NoError(t, err)
	require.NoError(t, st.Load(permission.Snapshot{Permissions: perms, Role: role}))
	return st
}

func TestStore_AdminBypass(t *testing.T) {
	sets := [][]string{
		nil,
		{},
		{"leave:view"},
		{"events:create", "hire:review"},
	}
	tokens := []string{"leave:approve", "anything:at_all", "", "no-colon"}

	for _, role := range []string{"admin", "super_admin", "Admin"} {
		for _, set := range sets {
			st := newLoadedStore(t, role, set...)
			for _, tok := range tokens {
				assert.True(t, st.HasPermission(tok), "role=%s token=%q", role, tok)
			}
			assert.True(t, st.HasAnyPermission())
			assert.True(t, st.HasAllPermissions(tokens...))
			assert.True(t, st.IsAdmin())
		}
	}
}

func TestStore_Membership(t *testing.T) {
	st := newLoadedStore(t, "employee", "leave:approve", "employees:view", "events:create", "leave:approve")

	assert.True(t, st.HasPermission("leave:approve"))
	assert.False(t, st.HasPermission("leave:reject"))
	assert.False(t, st.HasPermission("leave"))
	assert.False(t, st.HasPermission(""))

	assert.True(t, st.HasAnyPermission("leave:reject", "employees:view"))
	assert.False(t, st.HasAnyPermission("leave:reject", "hire:review"))
	assert.True(t, st.HasAllPermissions("leave:approve", "employees:view"))
	assert.False(t, st.HasAllPermissions("leave:approve", "hire:review"))

	assert.False(t, st.HasAnyPermission())
	assert.True(t, st.HasAllPermissions())

	assert.Equal(t, []string{"employees:view", "events:create", "leave:approve"}, st.Snapshot().Permissions)
}

func TestStore_FlagsFollowLatestSet(t *testing.T) {
	st := newLoadedStore(t, "manager", "leave:approve")
	assert.True(t, st.Flags().CanApproveLeave)
	assert.False(t, st.Flags().CanManageEvents)

	require.NoError(t, st.Load(permission.Snapshot{Permissions: []string{"events:delete"}, Role: "manager"}))
	flags := st.Flags()
	assert.False(t, flags.CanApproveLeave)
	assert.True(t, flags.CanManageEvents)
	assert.False(t, flags.CanViewStaff)
}

func TestStore_ClearKeepsRole(t *testing.T) {
	st := newLoadedStore(t, "hr", "employees:view")
	st.ClearPermissions()

	assert.Equal(t, "hr", st.Role())
	assert.False(t, st.HasPermission("employees:view"))

	st.Reset()
	assert.Empty(t, st.Role())
}
