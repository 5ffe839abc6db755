package domain

import "time"

// StaffRecord models a staff member as it appears in the roster. ManagerID
// optionally references another staff member; empty means unassigned.
type StaffRecord struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	PasswordHash    string
	Role            RoleID
	Department      string
	ManagerID       string
	ActiveCaseCount int
	Status          IdentityStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastLoginAt     *time.Time
}

// IdentityView derives the authenticated-identity record from a staff row.
func (s *StaffRecord) IdentityView() Identity {
	id := Identity{
		ID:        s.ID,
		Email:     s.Email,
		Role:      s.Role,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
	if s.LastLoginAt != nil {
		id.LastLoginAt = *s.LastLoginAt
	}
	return id
}
