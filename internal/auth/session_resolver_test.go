package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/org-access-service/internal/domain"
	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/identity"
	"github.com/spec-kit/org-access-service/internal/repository"
)

type fakeSessionStore struct {
	sessions map[string]domain.Session
	err      error
}

func (s *fakeSessionStore) Put(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeStaffRepo struct {
	repository.StaffRepository
	records map[string]domain.StaffRecord
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &record, nil
}

func resolverFixture(t *testing.T) (*SessionResolver, *fakeSessionStore, string) {
	t.Helper()

	tokens := NewTokenManager("test-secret", 60)
	store := &fakeSessionStore{sessions: map[string]domain.Session{
		"sess-1": {ID: "sess-1", StaffID: "s-1", Role: domain.RoleManager, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	staff := &fakeStaffRepo{records: map[string]domain.StaffRecord{
		"s-1": {ID: "s-1", Name: "Bob", Email: "bob@example.org", Role: domain.RoleManager, Status: domain.IdentityStatusActive},
	}}

	token, _, err := tokens.GenerateToken("s-1", domain.RoleManager, "sess-1")
	require.NoError(t, err)

	return NewSessionResolver(tokens, store, staff, events.NewInMemoryDispatcher(nil)), store, token
}

func TestBoundSessionResolvesIdentity(t *testing.T) {
	resolver, _, token := resolverFixture(t)

	id, err := resolver.Bind(token).Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "s-1", id.ID)
	assert.Equal(t, domain.RoleManager, id.Role)
}

func TestBoundSessionEmptyTokenIsAnonymous(t *testing.T) {
	resolver, _, _ := resolverFixture(t)

	id, err := resolver.Bind("").Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestBoundSessionMalformedTokenIsAnonymous(t *testing.T) {
	resolver, _, _ := resolverFixture(t)

	id, err := resolver.Bind("not-a-jwt").Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestBoundSessionRevokedSessionIsAnonymous(t *testing.T) {
	resolver, store, token := resolverFixture(t)
	delete(store.sessions, "sess-1")

	id, err := resolver.Bind(token).Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestBoundSessionStoreOutageIsError(t *testing.T) {
	resolver, store, token := resolverFixture(t)
	store.err = errors.New("redis down")

	_, err := resolver.Bind(token).Resolve(context.Background())
	assert.Error(t, err)
}

func TestBoundSessionResolveConcurrentWithSignOutRelay(t *testing.T) {
	// claims are written on the request goroutine while the sign-out relay
	// reads them from whichever goroutine published the event
	tokens := NewTokenManager("test-secret", 60)
	store := &fakeSessionStore{sessions: map[string]domain.Session{
		"sess-1": {ID: "sess-1", StaffID: "s-1", Role: domain.RoleManager, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	staff := &fakeStaffRepo{records: map[string]domain.StaffRecord{
		"s-1": {ID: "s-1", Name: "Bob", Role: domain.RoleManager, Status: domain.IdentityStatusActive},
	}}
	dispatcher := events.NewInMemoryDispatcher(nil)
	resolver := NewSessionResolver(tokens, store, staff, dispatcher)

	token, _, err := tokens.GenerateToken("s-1", domain.RoleManager, "sess-1")
	require.NoError(t, err)

	bound := resolver.Bind(token)
	unsubscribe := bound.Subscribe(func(identity.ChangeEvent) {})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = dispatcher.Publish(context.Background(), events.Event{
				Type:    events.EventSignedOut,
				StaffID: "s-1",
				Payload: events.SignedOutPayload{SessionID: "sess-1"},
			})
		}
	}()
	for i := 0; i < 50; i++ {
		_, err := bound.Resolve(context.Background())
		require.NoError(t, err)
	}
	<-done
}

func TestSignOutPushRevokesLiveContext(t *testing.T) {
	tokens := NewTokenManager("test-secret", 60)
	store := &fakeSessionStore{sessions: map[string]domain.Session{
		"sess-1": {ID: "sess-1", StaffID: "s-1", Role: domain.RoleManager, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	staff := &fakeStaffRepo{records: map[string]domain.StaffRecord{
		"s-1": {ID: "s-1", Name: "Bob", Role: domain.RoleManager, Status: domain.IdentityStatusActive},
	}}
	dispatcher := events.NewInMemoryDispatcher(nil)
	resolver := NewSessionResolver(tokens, store, staff, dispatcher)

	token, _, err := tokens.GenerateToken("s-1", domain.RoleManager, "sess-1")
	require.NoError(t, err)

	ictx := identity.NewContext(resolver.Bind(token), nil)
	defer ictx.Close()
	ictx.Load(context.Background())
	_, ok := ictx.Identity()
	require.True(t, ok)

	_ = dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventSignedOut,
		StaffID: "s-1",
		Payload: events.SignedOutPayload{SessionID: "sess-1"},
	})

	_, ok = ictx.Identity()
	assert.False(t, ok)
	assert.Equal(t, identity.StateAnonymous, ictx.State())
}
