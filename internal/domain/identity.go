package domain

import "time"

// IdentityStatus represents lifecycle states for a staff account.
type IdentityStatus string

const (
	IdentityStatusActive    IdentityStatus = "ACTIVE"
	IdentityStatusSuspended IdentityStatus = "SUSPENDED"
)

// Identity is the currently authenticated staff member's record. It is
// replaced wholesale on re-authentication, never merged.
type Identity struct {
	ID          string
	Email       string
	Role        RoleID
	Status      IdentityStatus
	CreatedAt   time.Time
	LastLoginAt time.Time
}
