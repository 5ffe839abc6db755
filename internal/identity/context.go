package identity

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/rbac"
)

// State enumerates the identity lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

// Context is the single holder of "who is currently authenticated" for one
// consumer. It is constructed explicitly and passed to every access gate,
// never kept as an ambient global. It registers exactly one subscription to
// its provider at construction and drops it on Close.
type Context struct {
	mu          sync.RWMutex
	state       State
	identity    *domain.Identity
	provider    Provider
	unsubscribe func()
	logger      *zap.Logger
}

// NewContext builds a context in the Uninitialized state, subscribed to the
// provider's change feed. Call Load to start the first resolution.
func NewContext(provider Provider, logger *zap.Logger) *Context {
	c := &Context{state: StateUninitialized, provider: provider, logger: logger}
	c.unsubscribe = provider.Subscribe(c.apply)
	return c
}

// NewAuthenticated builds a context already resolved to the given identity.
// Used where the session was established out of band, e.g. per request.
func NewAuthenticated(id domain.Identity) *Context {
	return &Context{state: StateAuthenticated, identity: &id}
}

// NewAnonymous builds a context resolved to "no session".
func NewAnonymous() *Context {
	return &Context{state: StateAnonymous}
}

// NewLoading builds a context stuck in the Loading state. Used when the
// provider could not be reached; the transient Pending outcome is the
// defined surface for that, not an error.
func NewLoading() *Context {
	return &Context{state: StateLoading}
}

// Load asks the provider for the current session. The context stays in
// Loading when the provider is unreachable; there is no automatic retry
// here, a later push from the provider completes the transition.
func (c *Context) Load(ctx context.Context) {
	c.mu.Lock()
	c.state = StateLoading
	c.identity = nil
	provider := c.provider
	c.mu.Unlock()

	if provider == nil {
		return
	}

	id, err := provider.Resolve(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("identity provider unreachable", zap.Error(err))
		}
		return
	}
	c.apply(ChangeEvent{Identity: id})
}

// apply consumes a provider change notification. A pushed identity replaces
// the prior one wholesale; a nil identity signs the context out; an
// in-progress push restarts the cycle at Loading.
func (c *Context) apply(event ChangeEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case event.InProgress:
		c.state = StateLoading
		c.identity = nil
	case event.Identity != nil:
		id := *event.Identity
		c.state = StateAuthenticated
		c.identity = &id
	default:
		c.state = StateAnonymous
		c.identity = nil
	}
}

// State reports the current lifecycle state.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsLoading reports whether the identity is still being resolved. The
// Uninitialized state counts as loading: no decision can be made yet.
func (c *Context) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateUninitialized || c.state == StateLoading
}

// Identity returns the authenticated identity, if any.
func (c *Context) Identity() (domain.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateAuthenticated || c.identity == nil {
		return domain.Identity{}, false
	}
	return *c.identity, true
}

// Role returns the current identity's role, if any.
func (c *Context) Role() (domain.RoleID, bool) {
	id, ok := c.Identity()
	if !ok {
		return "", false
	}
	return id.Role, true
}

// RoleInfo returns the catalog entry for the current identity's role.
func (c *Context) RoleInfo() (domain.Role, bool) {
	role, ok := c.Role()
	if !ok {
		return domain.Role{}, false
	}
	return rbac.RoleInfo(role)
}

// HasPermission reports whether the current identity's role grants the named
// permission. False whenever no identity is present or still loading.
func (c *Context) HasPermission(name string) bool {
	role, ok := c.Role()
	if !ok {
		return false
	}
	return rbac.ResolvePermission(role, name)
}

// Close drops the provider subscription. Unconditional and idempotent: safe
// to call repeatedly, or when no subscription was ever established.
func (c *Context) Close() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
