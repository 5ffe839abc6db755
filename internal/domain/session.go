package domain

import "time"

// Session records an issued login session. Sessions are held in the session
// store until they expire or are revoked on sign-out.
type Session struct {
	ID        string
	StaffID   string
	Role      RoleID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
