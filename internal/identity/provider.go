package identity

import (
	"context"

	"github.com/spec-kit/org-access-service/internal/domain"
)

// ChangeEvent is pushed by a Provider whenever the session state moves.
// A nil Identity means signed out; InProgress marks the start of a new
// sign-in before the identity is known.
type ChangeEvent struct {
	Identity   *domain.Identity
	InProgress bool
}

// Provider is the external collaborator that resolves the current session.
// Resolve returns the authenticated identity, or nil when there is no
// session. Subscribe registers a change-notification callback and returns
// the matching unsubscribe; updates are push-driven, never polled.
type Provider interface {
	Resolve(ctx context.Context) (*domain.Identity, error)
	Subscribe(fn func(ChangeEvent)) (unsubscribe func())
}
