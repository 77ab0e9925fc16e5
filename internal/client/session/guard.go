package session

import "sync"

// Decision is what the guard tells the caller to do with a navigation
// attempt.
type Decision int

const (
	// DecisionWait means the session is still resolving; retry after the
	// cache settles.
	DecisionWait Decision = iota
	// DecisionProceed lets the navigation through.
	DecisionProceed
	// DecisionRedirect sends the user to the login view; the requested
	// destination is parked for later.
	DecisionRedirect
)

// Guard gates access to protected views based on cache state. When an
// anonymous user is bounced to login, the originally requested destination is
// remembered so it can be restored after a successful login.
type Guard struct {
	LoginPath string

	mu     sync.Mutex
	parked string
}

func NewGuard(loginPath string) *Guard {
	return &Guard{LoginPath: loginPath}
}

// Check evaluates a navigation to destination under the given status. It
// returns the decision and, for redirects, the path to go to instead.
func (g *Guard) Check(status Status, destination string) (Decision, string) {
	switch status {
	case StatusAuthenticated:
		return DecisionProceed, destination
	case StatusAnonymous:
		g.mu.Lock()
		g.parked = destination
		g.mu.Unlock()
		return DecisionRedirect, g.LoginPath
	default:
		return DecisionWait, ""
	}
}

// Consume returns the destination parked by the last redirect, or fallback
// when none is parked. The parked value is cleared either way, so a stored
// destination is restored at most once.
func (g *Guard) Consume(fallback string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	dest := g.parked
	g.parked = ""
	if dest == "" {
		return fallback
	}
	return dest
}
