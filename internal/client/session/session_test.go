package session

import (
	"context"
	"errors"
	"testing"

	"github.com/admintieri/tractoradmin/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	identity *api.Identity
	err      error
}

func (s *stubResolver) Me(context.Context) (*api.Identity, error) {
	return s.identity, s.err
}

func TestCache_StartsLoading(t *testing.T) {
	c := NewCache()

	status, identity := c.Snapshot()
	assert.Equal(t, StatusLoading, status)
	assert.Nil(t, identity)
}

func TestCache_ResolveAuthenticated(t *testing.T) {
	c := NewCache()
	c.Resolve(context.Background(), &stubResolver{identity: &api.Identity{ID: 1, Email: "admin@x.com"}})

	status, identity := c.Snapshot()
	assert.Equal(t, StatusAuthenticated, status)
	require.NotNil(t, identity)
	assert.Equal(t, "admin@x.com", identity.Email)
}

func TestCache_ResolveFailureIsAnonymous(t *testing.T) {
	for _, err := range []error{api.ErrUnauthorized, api.ErrUnavailable, errors.New("boom")} {
		c := NewCache()
		c.Resolve(context.Background(), &stubResolver{err: err})

		status, identity := c.Snapshot()
		assert.Equal(t, StatusAnonymous, status, "error %v", err)
		assert.Nil(t, identity)
	}
}

func TestCache_StaleResolutionIsDiscarded(t *testing.T) {
	c := NewCache()

	// A resolution starts, then the user logs in before it completes.
	gen := c.Begin()
	c.SetAuthenticated(&api.Identity{ID: 1, Email: "admin@x.com"})

	// The slow response comes back saying "anonymous"; it must lose.
	c.Complete(gen, nil)

	status, identity := c.Snapshot()
	assert.Equal(t, StatusAuthenticated, status)
	require.NotNil(t, identity)
	assert.Equal(t, "admin@x.com", identity.Email)
}

func TestCache_StaleResolutionCannotRevive(t *testing.T) {
	c := NewCache()

	gen := c.Begin()
	c.SetAnonymous() // logout wins over the in-flight check

	c.Complete(gen, &api.Identity{ID: 1})

	status, identity := c.Snapshot()
	assert.Equal(t, StatusAnonymous, status)
	assert.Nil(t, identity)
}

func TestCache_OptimisticLogout(t *testing.T) {
	c := NewCache()
	c.SetAuthenticated(&api.Identity{ID: 1})

	// The network call may fail afterwards; the local state is already gone.
	c.SetAnonymous()

	status, _ := c.Snapshot()
	assert.Equal(t, StatusAnonymous, status)
}

func TestCache_SnapshotCopiesIdentity(t *testing.T) {
	c := NewCache()
	c.SetAuthenticated(&api.Identity{ID: 1, Name: "Ada"})

	_, identity := c.Snapshot()
	identity.Name = "mutated"

	_, again := c.Snapshot()
	assert.Equal(t, "Ada", again.Name)
}

func TestGuard_Decisions(t *testing.T) {
	g := NewGuard("/login")

	decision, path := g.Check(StatusLoading, "/audit")
	assert.Equal(t, DecisionWait, decision)
	assert.Empty(t, path)

	decision, path = g.Check(StatusAuthenticated, "/audit")
	assert.Equal(t, DecisionProceed, decision)
	assert.Equal(t, "/audit", path)

	decision, path = g.Check(StatusAnonymous, "/audit")
	assert.Equal(t, DecisionRedirect, decision)
	assert.Equal(t, "/login", path)
}

func TestGuard_ConsumeRestoresDestinationOnce(t *testing.T) {
	g := NewGuard("/login")

	g.Check(StatusAnonymous, "/users")

	assert.Equal(t, "/users", g.Consume("/"))
	// Cleared after the first read.
	assert.Equal(t, "/", g.Consume("/"))
}

func TestGuard_ConsumeFallbackWhenNothingParked(t *testing.T) {
	g := NewGuard("/login")
	assert.Equal(t, "/", g.Consume("/"))
}
