// Package api is the HTTP client for the admin-console API. Authentication
// rides on the session cookie: the client keeps a cookie jar, so once Login
// succeeds every later call carries the session automatically, exactly like a
// browser would.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the API at baseURL (scheme and host, no
// trailing path). The timeout applies per request.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode error: %w", err)
		}
	}
	return nil
}

func (c *Client) mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return fmt.Errorf("api error: status %d", code)
	}
}

// Login exchanges credentials for a session cookie. The cookie lands in the
// jar; the returned identity is the signed-in administrator's profile.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	var identity Identity
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &identity)
	if err != nil {
		// On this endpoint 401 means bad credentials, not a missing session.
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &identity, nil
}

// Me resolves the current session cookie to a live identity.
// ErrUnauthorized means the cookie is missing, expired, or references a
// deleted account.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout asks the server to clear the session cookie. The jar picks up the
// expired cookie from the response.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListTractors fetches one of the two catalogs; condition is "nuovi" or
// "usati". A non-empty q filters by name.
func (c *Client) ListTractors(ctx context.Context, condition, q string) ([]Tractor, error) {
	path := "/api/trattori/" + url.PathEscape(condition)
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	var items []Tractor
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAudit fetches a page of the activity feed.
func (c *Client) ListAudit(ctx context.Context, page, take int) (*AuditPage, error) {
	path := "/api/audit?page=" + strconv.Itoa(page) + "&take=" + strconv.Itoa(take)
	var out AuditPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	// Older deployments omit the total; fall back to what we can see.
	if out.Total == 0 && len(out.Items) > 0 {
		out.Total = int64(len(out.Items))
	}
	return &out, nil
}

// ListUsers fetches a page of the user directory.
func (c *Client) ListUsers(ctx context.Context, page, take int) (*UserPage, error) {
	path := "/api/users?page=" + strconv.Itoa(page) + "&take=" + strconv.Itoa(take)
	var out UserPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
