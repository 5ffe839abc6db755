package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/org-access-service/internal/domain"
)

func TestResolvePermissionUnknownRoleFailsClosed(t *testing.T) {
	assert.False(t, ResolvePermission(domain.RoleID("superuser"), "manage_users"))
	assert.False(t, ResolvePermission(domain.RoleID(""), "manage_users"))
}

func TestResolvePermissionUnknownPermissionFailsClosed(t *testing.T) {
	// viewer has no manage_users entry at all
	assert.False(t, ResolvePermission(domain.RoleViewer, "manage_users"))
}

func TestResolvePermissionDisabledEntryDenied(t *testing.T) {
	// present in the catalog but flagged off
	assert.False(t, ResolvePermission(domain.RoleManager, "manage_staff"))
	assert.False(t, ResolvePermission(domain.RoleViewer, "view_reports"))
}

func TestResolvePermissionEnabledEntryGranted(t *testing.T) {
	assert.True(t, ResolvePermission(domain.RoleAdmin, "manage_users"))
	assert.True(t, ResolvePermission(domain.RoleManager, "manage_users"))
	assert.True(t, ResolvePermission(domain.RoleCaseWorker, "manage_cases"))
}

func TestResolvePermissionCaseSensitive(t *testing.T) {
	assert.True(t, ResolvePermission(domain.RoleAdmin, "manage_users"))
	assert.False(t, ResolvePermission(domain.RoleAdmin, "Manage_Users"))
	assert.False(t, ResolvePermission(domain.RoleAdmin, "MANAGE_USERS"))
}

func TestResolvePermissionDeterministic(t *testing.T) {
	first := ResolvePermission(domain.RoleManager, "view_reports")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ResolvePermission(domain.RoleManager, "view_reports"))
	}
}

func TestSamePermissionNameDiffersAcrossRoles(t *testing.T) {
	assert.True(t, ResolvePermission(domain.RoleManager, "view_reports"))
	assert.False(t, ResolvePermission(domain.RoleCaseWorker, "view_reports"))
}

func TestCatalogCoversEveryRole(t *testing.T) {
	for _, role := range []domain.RoleID{domain.RoleAdmin, domain.RoleManager, domain.RoleCaseWorker, domain.RoleViewer} {
		info, ok := RoleInfo(role)
		require.True(t, ok, "catalog entry missing for %s", role)
		assert.Equal(t, role, info.ID)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Permissions)
	}
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Administrator", RoleLabel(domain.RoleAdmin))
	assert.Equal(t, "Case Worker", RoleLabel(domain.RoleCaseWorker))
	// unknown roles fall back to the raw value
	assert.Equal(t, "mystery", RoleLabel(domain.RoleID("mystery")))
}

func TestParseRoleID(t *testing.T) {
	role, ok := domain.ParseRoleID("case-worker")
	require.True(t, ok)
	assert.Equal(t, domain.RoleCaseWorker, role)

	_, ok = domain.ParseRoleID("Case-Worker")
	assert.False(t, ok)

	_, ok = domain.ParseRoleID("root")
	assert.False(t, ok)
}
