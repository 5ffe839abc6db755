package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/org-access-service/internal/gate"
	"github.com/spec-kit/org-access-service/internal/identity"
)

// Middleware resolves the caller's bearer token into an identity context and
// stores it for route gates. It never rejects: unauthenticated callers pass
// through with an anonymous context, and every route decides via its gate.
type Middleware struct {
	resolver *SessionResolver
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(resolver *SessionResolver, logger *zap.Logger) *Middleware {
	return &Middleware{resolver: resolver, logger: logger}
}

// Handle resolves identity for the request. The context lives for one
// request: constructed, loaded, then closed after the handler chain runs.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := BearerFromHeader(c.Get("Authorization"))

	ictx := identity.NewContext(m.resolver.Bind(token), m.logger)
	defer ictx.Close()

	ictx.Load(c.UserContext())
	gate.StoreIdentityState(c, ictx)

	return c.Next()
}

// BearerFromHeader extracts the bearer token from an Authorization header,
// returning "" when absent or malformed.
func BearerFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
