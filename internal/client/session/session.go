// Package session tracks what the client knows about its own session. The
// server never pushes session changes, so the client keeps a small state
// machine: unknown at boot, then authenticated or anonymous, updated by the
// auth calls it makes itself.
package session

import (
	"context"
	"sync"

	"github.com/admintieri/tractoradmin/internal/client/api"
)

// Status is the cache's view of the session.
type Status int

const (
	// StatusLoading means the boot resolution has not finished yet. Callers
	// should hold off rather than guess.
	StatusLoading Status = iota
	// StatusAuthenticated means a live identity is cached.
	StatusAuthenticated
	// StatusAnonymous means there is no usable session.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Cache is the client-side session state machine. It starts in
// StatusLoading and moves to Authenticated or Anonymous when the boot
// resolution lands or when the user logs in or out.
//
// Every state change bumps a generation counter; a resolution started under
// an older generation is discarded when it completes, so a slow /me response
// can never overwrite the outcome of a login or logout that happened while
// it was in flight.
type Cache struct {
	mu         sync.Mutex
	status     Status
	identity   *api.Identity
	generation uint64
}

func NewCache() *Cache {
	return &Cache{status: StatusLoading}
}

// Snapshot returns the current status and, when authenticated, a copy of the
// cached identity.
func (c *Cache) Snapshot() (Status, *api.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return c.status, nil
	}
	identity := *c.identity
	return c.status, &identity
}

// Begin registers a new resolution attempt and returns its generation token.
// Starting a new attempt supersedes any still in flight.
func (c *Cache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// Complete applies the outcome of the resolution identified by gen. A nil
// identity means anonymous. Stale generations are ignored.
func (c *Cache) Complete(gen uint64, identity *api.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	if identity == nil {
		c.status = StatusAnonymous
		c.identity = nil
		return
	}
	c.status = StatusAuthenticated
	c.identity = identity
}

// SetAuthenticated records a successful login. In-flight resolutions are
// superseded.
func (c *Cache) SetAuthenticated(identity *api.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.status = StatusAuthenticated
	c.identity = identity
}

// SetAnonymous clears the cached session. Called optimistically on logout:
// the local session dies even if the network call fails.
func (c *Cache) SetAnonymous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.status = StatusAnonymous
	c.identity = nil
}

// Resolver is the part of the API client the boot resolution needs.
type Resolver interface {
	Me(ctx context.Context) (*api.Identity, error)
}

// Resolve runs one resolution against the server and folds the result into
// the cache. Any failure, expired cookie or unreachable server alike, lands
// in Anonymous; on this path the distinction changes nothing for the caller.
func (c *Cache) Resolve(ctx context.Context, r Resolver) {
	gen := c.Begin()

	identity, err := r.Me(ctx)
	if err != nil {
		c.Complete(gen, nil)
		return
	}
	c.Complete(gen, identity)
}
