package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/org-access-service/internal/api/dto"
	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/gate"
	"github.com/spec-kit/org-access-service/internal/observability"
)

// AccessHandler answers client-side gate evaluations.
type AccessHandler struct {
	signInPath string
	metrics    *observability.Metrics
}

// NewAccessHandler constructs handler.
func NewAccessHandler(signInPath string, metrics *observability.Metrics) *AccessHandler {
	return &AccessHandler{signInPath: signInPath, metrics: metrics}
}

// Evaluate handles POST /access/evaluate. Unrecognized role strings in the
// requirement are kept as-is: they can never match a real identity role, so
// they narrow access rather than widening it. Dropping them instead could
// turn a fully misspelled list into "unrestricted".
func (h *AccessHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	requirement := gate.Requirement{
		RequiredPermission: req.RequiredPermission,
		FallbackPath:       req.FallbackPath,
		SilentRedirect:     req.ShowDeniedMessage != nil && !*req.ShowDeniedMessage,
	}
	for _, raw := range req.AllowedRoles {
		requirement.AllowedRoles = append(requirement.AllowedRoles, domain.RoleID(raw))
	}

	state, _ := gate.IdentityStateFromRequest(c)
	decision := gate.Evaluate(state, requirement)
	h.metrics.RecordAccessDecision(c.Path(), decision.Outcome.String())

	resp := dto.EvaluateResponse{
		Outcome:      decision.Outcome.String(),
		RedirectPath: decision.RedirectPath,
		Role:         decision.RoleLabel,
		Message:      decision.Message,
	}
	if decision.Outcome == gate.OutcomeSignIn {
		resp.RedirectPath = h.signInPath
	}
	return c.JSON(fiber.Map{"data": resp})
}
