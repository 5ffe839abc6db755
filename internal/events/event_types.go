package events

import (
	"time"

	"github.com/spec-kit/org-access-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSignedIn     EventType = "identity_signed_in"
	EventSignedOut    EventType = "identity_signed_out"
	EventAccessDenied EventType = "access_denied"
	EventStaffChanged EventType = "staff_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   string      `json:"staff_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SignedInPayload payload.
type SignedInPayload struct {
	SessionID string        `json:"session_id"`
	Role      domain.RoleID `json:"role"`
	Email     string        `json:"email"`
}

// SignedOutPayload payload.
type SignedOutPayload struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason,omitempty"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Role               domain.RoleID   `json:"role"`
	Path               string          `json:"path"`
	AllowedRoles       []domain.RoleID `json:"allowed_roles,omitempty"`
	RequiredPermission string          `json:"required_permission,omitempty"`
}

// StaffChangedPayload payload.
type StaffChangedPayload struct {
	Action     string        `json:"action"`
	Role       domain.RoleID `json:"role"`
	Department string        `json:"department,omitempty"`
}
