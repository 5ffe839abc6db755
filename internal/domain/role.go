package domain

// RoleID enumerates the closed set of staff roles.
type RoleID string

const (
	RoleAdmin      RoleID = "admin"
	RoleManager    RoleID = "manager"
	RoleCaseWorker RoleID = "case-worker"
	RoleViewer     RoleID = "viewer"
)

// ParseRoleID validates an externally supplied role string into the
// enumeration. Unrecognized values fail closed.
func ParseRoleID(s string) (RoleID, bool) {
	switch RoleID(s) {
	case RoleAdmin, RoleManager, RoleCaseWorker, RoleViewer:
		return RoleID(s), true
	}
	return "", false
}

// Permission is a named, boolean-gated capability within a role. Names are
// unique within a role but may repeat across roles with different flags.
type Permission struct {
	Name    string
	Enabled bool
}

// Role maps a role identifier to its display name and permission set.
type Role struct {
	ID          RoleID
	Name        string
	Permissions []Permission
}
