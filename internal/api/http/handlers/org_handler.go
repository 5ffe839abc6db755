package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/org-access-service/internal/api/dto"
	"github.com/spec-kit/org-access-service/internal/service"
)

// OrgHandler serves the reconstructed organization chart.
type OrgHandler struct {
	org *service.OrgService
}

// NewOrgHandler constructs handler.
func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{org: orgService}
}

// Chart handles GET /org/chart.
func (h *OrgHandler) Chart(c *fiber.Ctx) error {
	chart, err := h.org.Chart(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.OrgChartResponse{
			Mode:  chart.Mode,
			Nodes: dto.FromOrgForest(chart.Forest),
		},
	})
}
