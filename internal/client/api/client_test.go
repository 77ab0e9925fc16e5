package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer imitates the admin-console API closely enough to exercise the
// cookie round trip: login plants a session cookie, protected endpoints
// demand it, logout expires it.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	authed := func(r *http.Request) bool {
		ck, err := r.Cookie("session_token")
		return err == nil && ck.Value == "tok-123"
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "admin@x.com" || body.Password != "right" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session_token", Value: "tok-123", Path: "/", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(Identity{ID: 1, Name: "Ada", Email: "admin@x.com"})
	})

	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Identity{ID: 1, Name: "Ada", Email: "admin@x.com"})
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session_token", Value: "", Path: "/", MaxAge: -1})
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	mux.HandleFunc("GET /api/trattori/nuovi", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		items := []Tractor{{ID: 1, Name: "T-100", Price: 25000, Quantity: 3}}
		if r.URL.Query().Get("q") == "none" {
			items = nil
		}
		_ = json.NewEncoder(w).Encode(items)
	})

	mux.HandleFunc("GET /api/audit", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []AuditRecord{{ID: "a1", Action: "login", UserEmail: "admin@x.com"}},
		})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":1,"name":"Ada","email":"admin@x.com"}],"pagination":{"total":1,"pages":1}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestClient_LoginCookieCarriesSession(t *testing.T) {
	srv := fakeServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	// protected call before login fails
	_, err := c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	identity, err := c.Login(ctx, "admin@x.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "Ada", identity.Name)

	// the jar now carries the cookie without any extra plumbing
	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity, me)

	require.NoError(t, c.Logout(ctx))

	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_LoginBadCredentials(t *testing.T) {
	srv := fakeServer(t)
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), "admin@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_ListTractors(t *testing.T) {
	srv := fakeServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@x.com", "right")
	require.NoError(t, err)

	items, err := c.ListTractors(ctx, "nuovi", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "T-100", items[0].Name)

	items, err = c.ListTractors(ctx, "nuovi", "none")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_ListAudit_TotalFallback(t *testing.T) {
	srv := fakeServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@x.com", "right")
	require.NoError(t, err)

	// The fake omits "total"; the client counts what it received.
	page, err := c.ListAudit(ctx, 1, 25)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
}

func TestClient_ListUsers(t *testing.T) {
	srv := fakeServer(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@x.com", "right")
	require.NoError(t, err)

	page, err := c.ListUsers(ctx, 1, 25)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, int64(1), page.Pagination.Pages)
}

func TestClient_ServerUnreachable(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
