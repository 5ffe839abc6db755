package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/org-access-service/internal/auth"
	"github.com/spec-kit/org-access-service/internal/config"
	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/repository"
	apperrors "github.com/spec-kit/org-access-service/pkg/util"
)

// StaffService manages the staff roster.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// StaffInput carries fields for creating or updating a staff member.
type StaffInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	Role            domain.RoleID
	Department      string
	ManagerID       string
	ActiveCaseCount int
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staff repository.StaffRepository, dispatcher events.Dispatcher) *StaffService {
	return &StaffService{staff: staff, dispatcher: dispatcher, bcryptCost: cfg.Auth.BcryptCost}
}

// Create adds a staff member to the roster.
func (s *StaffService) Create(ctx context.Context, input StaffInput) (*domain.StaffRecord, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if _, ok := domain.ParseRoleID(string(input.Role)); !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	record := &domain.StaffRecord{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		PasswordHash:    hash,
		Role:            input.Role,
		Department:      input.Department,
		ManagerID:       input.ManagerID,
		ActiveCaseCount: input.ActiveCaseCount,
		Status:          domain.IdentityStatusActive,
	}
	if err := s.staff.Create(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, record, "created")
	return record, nil
}

// Update modifies roster fields of an existing staff member.
func (s *StaffService) Update(ctx context.Context, id string, input StaffInput) (*domain.StaffRecord, error) {
	record, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != "" {
		if _, ok := domain.ParseRoleID(string(input.Role)); !ok {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
		}
		record.Role = input.Role
	}
	if input.Name != "" {
		record.Name = input.Name
	}
	if input.Phone != "" {
		record.Phone = input.Phone
	}
	if input.Department != "" {
		record.Department = input.Department
	}
	record.ManagerID = input.ManagerID
	if input.ActiveCaseCount >= 0 {
		record.ActiveCaseCount = input.ActiveCaseCount
	}

	if err := s.staff.Update(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, record, "updated")
	return record, nil
}

// List returns the roster, optionally filtered by role or department.
func (s *StaffService) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffRecord, error) {
	return s.staff.List(ctx, filter)
}

func (s *StaffService) publish(ctx context.Context, record *domain.StaffRecord, action string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStaffChanged,
		StaffID:   record.ID,
		Timestamp: time.Now(),
		Payload: events.StaffChangedPayload{
			Action:     action,
			Role:       record.Role,
			Department: record.Department,
		},
	})
}
