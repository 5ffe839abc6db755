package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/identity"
	"github.com/spec-kit/org-access-service/internal/repository"
)

// SessionResolver turns bearer tokens into identity providers. Each request
// binds its token once; the bound provider resolves the session and relays
// sign-out pushes for it.
type SessionResolver struct {
	tokens     *TokenManager
	sessions   repository.SessionStore
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
}

// NewSessionResolver constructs the resolver.
func NewSessionResolver(tokens *TokenManager, sessions repository.SessionStore, staff repository.StaffRepository, dispatcher events.Dispatcher) *SessionResolver {
	return &SessionResolver{tokens: tokens, sessions: sessions, staff: staff, dispatcher: dispatcher}
}

// Bind ties a raw bearer token (possibly empty) to a provider instance.
func (r *SessionResolver) Bind(token string) identity.Provider {
	return &boundSession{resolver: r, token: token}
}

type boundSession struct {
	resolver *SessionResolver
	token    string

	mu     sync.Mutex
	claims *Claims
}

func (b *boundSession) setClaims(claims *Claims) {
	b.mu.Lock()
	b.claims = claims
	b.mu.Unlock()
}

func (b *boundSession) currentClaims() *Claims {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.claims
}

// Resolve maps the bound token to an identity. Absent, malformed, revoked
// and suspended sessions all resolve to "no session", not an error; an
// error is returned only when a backing store is unreachable, which leaves
// the consumer in the pending state.
func (b *boundSession) Resolve(ctx context.Context) (*domain.Identity, error) {
	if b.token == "" {
		return nil, nil
	}

	claims, err := b.resolver.tokens.ParseToken(b.token)
	if err != nil {
		return nil, nil
	}
	b.setClaims(claims)

	if _, err := b.resolver.sessions.Get(ctx, claims.SessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	staff, err := b.resolver.staff.GetByID(ctx, claims.StaffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if staff.Status != domain.IdentityStatusActive {
		return nil, nil
	}

	id := staff.IdentityView()
	return &id, nil
}

// Subscribe relays sign-out events for the bound session or staff member as
// change notifications. The returned unsubscribe is safe to call repeatedly.
func (b *boundSession) Subscribe(fn func(identity.ChangeEvent)) func() {
	if b.resolver.dispatcher == nil {
		return func() {}
	}
	return b.resolver.dispatcher.Subscribe(events.EventSignedOut, func(_ context.Context, event events.Event) error {
		if !b.matches(event) {
			return nil
		}
		fn(identity.ChangeEvent{Identity: nil})
		return nil
	})
}

func (b *boundSession) matches(event events.Event) bool {
	// runs on whichever goroutine published the sign-out, concurrent with
	// Resolve on the request goroutine
	claims := b.currentClaims()
	if claims == nil {
		return false
	}
	if event.StaffID == claims.StaffID {
		return true
	}
	if payload, ok := event.Payload.(events.SignedOutPayload); ok {
		return payload.SessionID == claims.SessionID
	}
	return false
}
