package gate

import (
	"fmt"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/rbac"
)

// DefaultFallbackPath is where denied users are pointed when a requirement
// does not name its own fallback.
const DefaultFallbackPath = "/dashboard"

// IdentityState is what the gate reads to decide. identity.Context satisfies
// it; the gate never mutates it and never caches a decision across calls.
type IdentityState interface {
	IsLoading() bool
	Identity() (domain.Identity, bool)
	HasPermission(name string) bool
}

// Requirement declares what a protected region demands. The zero value means
// "any authenticated role, no permission, default fallback, show the denial
// message". An empty AllowedRoles list is no role restriction, not "no role
// is allowed".
type Requirement struct {
	AllowedRoles       []domain.RoleID
	RequiredPermission string
	FallbackPath       string
	SilentRedirect     bool
}

// Outcome enumerates the gate's possible answers.
type Outcome int

const (
	// OutcomePending: identity still resolving, show a loading placeholder.
	OutcomePending Outcome = iota
	// OutcomeSignIn: no session, send the caller to the sign-in entry point.
	OutcomeSignIn
	// OutcomeAllow: render the protected content.
	OutcomeAllow
	// OutcomeDenyMessage: show a denial panel naming the caller's role.
	OutcomeDenyMessage
	// OutcomeDenyRedirect: silently send the caller to the fallback path.
	OutcomeDenyRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSignIn:
		return "sign_in"
	case OutcomeAllow:
		return "allow"
	case OutcomeDenyMessage:
		return "deny_message"
	case OutcomeDenyRedirect:
		return "deny_redirect"
	}
	return "unknown"
}

// Decision is the gate's answer for one evaluation.
type Decision struct {
	Outcome      Outcome
	RedirectPath string
	RoleLabel    string
	Message      string
}

// Allowed reports whether the decision admits the caller.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Evaluate decides what to do with a protected region. It is evaluated anew
// on every call since identity state can change at any time, and it never
// fails: every input, including a partially populated requirement, resolves
// to one of the five outcomes.
func Evaluate(state IdentityState, req Requirement) Decision {
	fallback := req.FallbackPath
	if fallback == "" {
		fallback = DefaultFallbackPath
	}

	if state == nil || state.IsLoading() {
		return Decision{Outcome: OutcomePending}
	}

	id, ok := state.Identity()
	if !ok {
		return Decision{Outcome: OutcomeSignIn}
	}

	roleOk := len(req.AllowedRoles) == 0
	for _, role := range req.AllowedRoles {
		if role == id.Role {
			roleOk = true
			break
		}
	}

	permissionOk := req.RequiredPermission == "" || state.HasPermission(req.RequiredPermission)

	if roleOk && permissionOk {
		return Decision{Outcome: OutcomeAllow}
	}

	if req.SilentRedirect {
		return Decision{Outcome: OutcomeDenyRedirect, RedirectPath: fallback}
	}

	label := rbac.RoleLabel(id.Role)
	return Decision{
		Outcome:      OutcomeDenyMessage,
		RedirectPath: fallback,
		RoleLabel:    label,
		Message:      fmt.Sprintf("your role %s does not have access to this area", label),
	}
}
