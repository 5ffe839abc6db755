package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/org-access-service/internal/api/dto"
	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/rbac"
	"github.com/spec-kit/org-access-service/internal/repository"
	"github.com/spec-kit/org-access-service/internal/service"
)

// StaffHandler exposes roster management endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staffService}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	filter := repository.StaffFilter{}
	if raw := c.Query("role"); raw != "" {
		role, ok := domain.ParseRoleID(raw)
		if !ok {
			return fiber.NewError(http.StatusBadRequest, "unknown role")
		}
		filter.Role = &role
	}
	if dept := c.Query("department"); dept != "" {
		filter.Department = &dept
	}

	records, err := h.staff.List(c.Context(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.StaffResponse, 0, len(records))
	for _, record := range records {
		out = append(out, dto.FromStaffRecord(record, rbac.RoleLabel(record.Role)))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.staff.Create(c.Context(), service.StaffInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		Role:            domain.RoleID(req.Role),
		Department:      req.Department,
		ManagerID:       req.ManagerID,
		ActiveCaseCount: req.ActiveCaseCount,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromStaffRecord(*record, rbac.RoleLabel(record.Role)),
	})
}

// Update handles PATCH /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.staff.Update(c.Context(), c.Params("id"), service.StaffInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Role:            domain.RoleID(req.Role),
		Department:      req.Department,
		ManagerID:       req.ManagerID,
		ActiveCaseCount: req.ActiveCaseCount,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.FromStaffRecord(*record, rbac.RoleLabel(record.Role)),
	})
}
