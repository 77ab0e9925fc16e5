// Package cli is the interactive admin console client. It talks to the HTTP
// API through a cookie-holding client and mirrors the session state in a
// local cache so the prompt always shows who is signed in.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/admintieri/tractoradmin/internal/client/api"
	"github.com/admintieri/tractoradmin/internal/client/config"
	"github.com/admintieri/tractoradmin/internal/client/session"
)

type App struct {
	config *config.Config
	api    apiClient
	cache  *session.Cache
	guard  *session.Guard
	reader *bufio.Reader
}

// apiClient is the surface of api.Client the REPL uses; tests substitute a
// stub.
type apiClient interface {
	Login(ctx context.Context, email, password string) (*api.Identity, error)
	Me(ctx context.Context) (*api.Identity, error)
	Logout(ctx context.Context) error
	ListTractors(ctx context.Context, condition, q string) ([]api.Tractor, error)
	ListAudit(ctx context.Context, page, take int) (*api.AuditPage, error)
	ListUsers(ctx context.Context, page, take int) (*api.UserPage, error)
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    client,
		cache:  session.NewCache(),
		guard:  session.NewGuard("login"),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	status, _ := a.cache.Snapshot()
	return status == session.StatusAuthenticated
}

func (a *App) Run(ctx context.Context) {
	// The cookie jar starts empty, so this resolves to anonymous; it still
	// runs so that the prompt never shows the loading state.
	a.cache.Resolve(ctx, a.api)
	a.Root(ctx)
}
