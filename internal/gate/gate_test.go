package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/identity"
)

func authedAs(role domain.RoleID) IdentityState {
	return identity.NewAuthenticated(domain.Identity{ID: "s-1", Email: "staff@example.org", Role: role})
}

func TestEvaluateLoadingYieldsPending(t *testing.T) {
	decision := Evaluate(identity.NewLoading(), Requirement{})
	assert.Equal(t, OutcomePending, decision.Outcome)
}

func TestEvaluateNilStateYieldsPending(t *testing.T) {
	// auth middleware never ran; fail closed to the transient state
	decision := Evaluate(nil, Requirement{})
	assert.Equal(t, OutcomePending, decision.Outcome)
}

func TestEvaluateAnonymousYieldsSignIn(t *testing.T) {
	decision := Evaluate(identity.NewAnonymous(), Requirement{})
	assert.Equal(t, OutcomeSignIn, decision.Outcome)
}

func TestEmptyAllowedRolesMeansUnrestricted(t *testing.T) {
	for _, role := range []domain.RoleID{domain.RoleAdmin, domain.RoleManager, domain.RoleCaseWorker, domain.RoleViewer} {
		decision := Evaluate(authedAs(role), Requirement{AllowedRoles: []domain.RoleID{}})
		assert.Equal(t, OutcomeAllow, decision.Outcome, "role %s", role)
	}
}

func TestRoleRestrictionDeniesEvenWithPermission(t *testing.T) {
	// manager satisfies manage_users yet is outside the allowed list
	decision := Evaluate(authedAs(domain.RoleManager), Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin},
		RequiredPermission: "manage_users",
	})
	assert.Equal(t, OutcomeDenyMessage, decision.Outcome)
}

func TestPermissionRestrictionDeniesAllowedRole(t *testing.T) {
	decision := Evaluate(authedAs(domain.RoleViewer), Requirement{
		RequiredPermission: "manage_users",
	})
	assert.Equal(t, OutcomeDenyMessage, decision.Outcome)
}

func TestRoleAndPermissionBothSatisfiedAllows(t *testing.T) {
	decision := Evaluate(authedAs(domain.RoleAdmin), Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin, domain.RoleManager},
		RequiredPermission: "manage_users",
	})
	assert.Equal(t, OutcomeAllow, decision.Outcome)
}

func TestDenialPanelNamesCurrentRole(t *testing.T) {
	decision := Evaluate(authedAs(domain.RoleCaseWorker), Requirement{
		AllowedRoles:       []domain.RoleID{domain.RoleAdmin, domain.RoleManager},
		RequiredPermission: "manage_users",
	})

	require.Equal(t, OutcomeDenyMessage, decision.Outcome)
	assert.Equal(t, "Case Worker", decision.RoleLabel)
	assert.Contains(t, decision.Message, "Case Worker")
	assert.Equal(t, DefaultFallbackPath, decision.RedirectPath)
}

func TestSilentRedirectSkipsMessage(t *testing.T) {
	decision := Evaluate(authedAs(domain.RoleViewer), Requirement{
		AllowedRoles:   []domain.RoleID{domain.RoleAdmin},
		FallbackPath:   "/home",
		SilentRedirect: true,
	})

	require.Equal(t, OutcomeDenyRedirect, decision.Outcome)
	assert.Equal(t, "/home", decision.RedirectPath)
	assert.Empty(t, decision.Message)
}

func TestUnknownRoleInRequirementNeverMatches(t *testing.T) {
	decision := Evaluate(authedAs(domain.RoleAdmin), Requirement{
		AllowedRoles: []domain.RoleID{domain.RoleID("superuser")},
	})
	assert.Equal(t, OutcomeDenyMessage, decision.Outcome)
}

func TestEvaluateIsRepeatable(t *testing.T) {
	state := authedAs(domain.RoleManager)
	req := Requirement{AllowedRoles: []domain.RoleID{domain.RoleManager}}
	first := Evaluate(state, req)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Evaluate(state, req))
	}
}

func TestLiveContextTransitionReflectedOnNextEvaluate(t *testing.T) {
	provider := &staticProvider{id: &domain.Identity{ID: "s-9", Role: domain.RoleAdmin}}
	ictx := identity.NewContext(provider, nil)
	defer ictx.Close()

	assert.Equal(t, OutcomePending, Evaluate(ictx, Requirement{}).Outcome)

	ictx.Load(context.Background())
	assert.Equal(t, OutcomeAllow, Evaluate(ictx, Requirement{}).Outcome)

	provider.push(identity.ChangeEvent{Identity: nil})
	assert.Equal(t, OutcomeSignIn, Evaluate(ictx, Requirement{}).Outcome)
}

type staticProvider struct {
	id   *domain.Identity
	subs []func(identity.ChangeEvent)
}

func (p *staticProvider) Resolve(_ context.Context) (*domain.Identity, error) {
	return p.id, nil
}

func (p *staticProvider) Subscribe(fn func(identity.ChangeEvent)) func() {
	p.subs = append(p.subs, fn)
	return func() {}
}

func (p *staticProvider) push(event identity.ChangeEvent) {
	for _, fn := range p.subs {
		fn(event)
	}
}
