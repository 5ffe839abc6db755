package rbac

import "github.com/spec-kit/org-access-service/internal/domain"

// The role catalog is fixed at build time and never mutated at runtime.
// Every RoleID used elsewhere in the system must have an entry here; a
// missing entry is a configuration defect and resolves to denial.
var catalog = []domain.Role{
	{
		ID:   domain.RoleAdmin,
		Name: "Administrator",
		Permissions: []domain.Permission{
			{Name: "manage_users", Enabled: true},
			{Name: "manage_staff", Enabled: true},
			{Name: "manage_content", Enabled: true},
			{Name: "manage_forms", Enabled: true},
			{Name: "manage_cases", Enabled: true},
			{Name: "view_reports", Enabled: true},
			{Name: "view_dashboard", Enabled: true},
		},
	},
	{
		ID:   domain.RoleManager,
		Name: "Manager",
		Permissions: []domain.Permission{
			{Name: "manage_users", Enabled: true},
			{Name: "manage_staff", Enabled: false},
			{Name: "manage_content", Enabled: true},
			{Name: "manage_forms", Enabled: true},
			{Name: "manage_cases", Enabled: true},
			{Name: "view_reports", Enabled: true},
			{Name: "view_dashboard", Enabled: true},
		},
	},
	{
		ID:   domain.RoleCaseWorker,
		Name: "Case Worker",
		Permissions: []domain.Permission{
			{Name: "manage_cases", Enabled: true},
			{Name: "edit_own_cases", Enabled: true},
			{Name: "view_reports", Enabled: false},
			{Name: "view_dashboard", Enabled: true},
		},
	},
	{
		ID:   domain.RoleViewer,
		Name: "Viewer",
		Permissions: []domain.Permission{
			{Name: "view_dashboard", Enabled: true},
			{Name: "view_reports", Enabled: false},
		},
	},
}

var catalogByID = func() map[domain.RoleID]domain.Role {
	index := make(map[domain.RoleID]domain.Role, len(catalog))
	for _, role := range catalog {
		index[role.ID] = role
	}
	return index
}()

// Catalog returns the full role catalog.
func Catalog() []domain.Role {
	return catalog
}

// RoleInfo looks up the catalog entry for a role.
func RoleInfo(role domain.RoleID) (domain.Role, bool) {
	info, ok := catalogByID[role]
	return info, ok
}

// ResolvePermission reports whether the named permission is enabled for the
// role. Unknown roles and unknown permission names are denied, never granted.
// The lookup is pure and total; permission names match exactly,
// case-sensitively.
func ResolvePermission(role domain.RoleID, permission string) bool {
	info, ok := catalogByID[role]
	if !ok {
		return false
	}
	for _, p := range info.Permissions {
		if p.Name == permission {
			return p.Enabled
		}
	}
	return false
}

// RoleLabel returns the human-readable name for a role. The label mapping
// lives only here; denial messages and the flattened org view both use it.
func RoleLabel(role domain.RoleID) string {
	if info, ok := catalogByID[role]; ok {
		return info.Name
	}
	return string(role)
}
