package gate

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/observability"
)

const identityStateKey = "identity_state"

// StoreIdentityState places the caller's resolved identity state in the
// request locals for downstream gates.
func StoreIdentityState(c *fiber.Ctx, state IdentityState) {
	c.Locals(identityStateKey, state)
}

// IdentityStateFromRequest retrieves the identity state set by the auth
// middleware. Absence means the middleware never ran; the gate treats that
// as still loading and fails closed to Pending.
func IdentityStateFromRequest(c *fiber.Ctx) (IdentityState, bool) {
	state, ok := c.Locals(identityStateKey).(IdentityState)
	return state, ok
}

// Middleware wraps a route group with a requirement. Outcomes map to HTTP:
// Pending 503 with Retry-After, SignIn 401, DenyMessage 403 with an
// explanatory body, DenyRedirect 303 to the fallback path.
func Middleware(req Requirement, dispatcher events.Dispatcher, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, _ := IdentityStateFromRequest(c)
		decision := Evaluate(state, req)
		metrics.RecordAccessDecision(c.Path(), decision.Outcome.String())

		switch decision.Outcome {
		case OutcomeAllow:
			return c.Next()
		case OutcomePending:
			c.Set("Retry-After", "1")
			return fiber.NewError(http.StatusServiceUnavailable, "identity still resolving")
		case OutcomeSignIn:
			return fiber.NewError(http.StatusUnauthorized, "sign-in required")
		case OutcomeDenyRedirect:
			return c.Redirect(decision.RedirectPath, http.StatusSeeOther)
		default:
			publishDenied(c, state, req, dispatcher)
			return c.Status(http.StatusForbidden).JSON(fiber.Map{
				"error": fiber.Map{
					"code":          "ACCESS_DENIED",
					"message":       decision.Message,
					"role":          decision.RoleLabel,
					"fallback_path": decision.RedirectPath,
				},
			})
		}
	}
}

func publishDenied(c *fiber.Ctx, state IdentityState, req Requirement, dispatcher events.Dispatcher) {
	if dispatcher == nil || state == nil {
		return
	}
	id, ok := state.Identity()
	if !ok {
		return
	}
	_ = dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessDenied,
		StaffID:   id.ID,
		Timestamp: time.Now(),
		Payload: events.AccessDeniedPayload{
			Role:               id.Role,
			Path:               c.Path(),
			AllowedRoles:       req.AllowedRoles,
			RequiredPermission: req.RequiredPermission,
		},
	})
}
