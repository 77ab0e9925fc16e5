package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/admintieri/tractoradmin/internal/client/api"
	"github.com/admintieri/tractoradmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. On success the session cookie
// lands in the API client's jar and the local cache flips to authenticated.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	identity, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			log.Printf("Login unsuccessful: invalid email or password")
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable: %s", err.Error())
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.cache.SetAuthenticated(identity)
	log.Printf("Login successful")
	return nil
}

// Logout clears the local session first and then tells the server. A network
// failure after the local clear still leaves the client logged out.
func (a *App) Logout(ctx context.Context) error {
	a.cache.SetAnonymous()

	if err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout request failed (local session cleared anyway): %s", err.Error())
		return err
	}

	fmt.Println("Logged out")
	return nil
}

// WhoAmI re-resolves the session against the server and prints the result.
// A token for a deleted account shows up as anonymous here, not as the stale
// cached profile.
func (a *App) WhoAmI(ctx context.Context) error {
	a.cache.Resolve(ctx, a.api)

	_, identity := a.cache.Snapshot()
	if identity == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (id %d)\n", identity.Name, identity.Email, identity.ID)
	return nil
}
