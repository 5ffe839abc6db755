package dto

import (
	"time"

	"github.com/spec-kit/org-access-service/internal/domain"
)

// StaffCreateRequest payload.
type StaffCreateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Department      string `json:"department"`
	ManagerID       string `json:"manager_id,omitempty"`
	ActiveCaseCount int    `json:"active_case_count,omitempty"`
}

// StaffUpdateRequest payload.
type StaffUpdateRequest struct {
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Role            string `json:"role,omitempty"`
	Department      string `json:"department,omitempty"`
	ManagerID       string `json:"manager_id,omitempty"`
	ActiveCaseCount int    `json:"active_case_count,omitempty"`
}

// StaffResponse mirrors a roster entry without credential fields.
type StaffResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Role            string     `json:"role"`
	RoleLabel       string     `json:"role_label"`
	Department      string     `json:"department"`
	ManagerID       string     `json:"manager_id,omitempty"`
	ActiveCaseCount int        `json:"active_case_count"`
	Status          string     `json:"status"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FromStaffRecord converts a domain record, using the given role label.
func FromStaffRecord(record domain.StaffRecord, roleLabel string) StaffResponse {
	return StaffResponse{
		ID:              record.ID,
		Name:            record.Name,
		Email:           record.Email,
		Phone:           record.Phone,
		Role:            string(record.Role),
		RoleLabel:       roleLabel,
		Department:      record.Department,
		ManagerID:       record.ManagerID,
		ActiveCaseCount: record.ActiveCaseCount,
		Status:          string(record.Status),
		LastLoginAt:     record.LastLoginAt,
		CreatedAt:       record.CreatedAt,
	}
}
