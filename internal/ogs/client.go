// Package ogs talks to the online-go.com REST API.
package ogs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ogs-notify/ogs-notify/internal/buildinfo"
	"github.com/ogs-notify/ogs-notify/internal/models"
)

// DefaultBaseURL is the OGS server ogs-notify polls.
const DefaultBaseURL = "https://online-go.com"

const (
	loginPath    = "/api/v0/login"
	mePath       = "/api/v1/me"
	overviewPath = "/api/v1/ui/overview"
)

// GameSource is the read side of the API the poller depends on.
type GameSource interface {
	CurrentUser(ctx context.Context) (models.User, error)
	ActiveGames(ctx context.Context) ([]models.Game, error)
}

// Ensure Client implements GameSource at compile time.
var _ GameSource = (*Client)(nil)

// Client performs authenticated requests using a cookie jar session.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type overviewResponse struct {
	ActiveGames []models.Game `json:"active_games"`
}

// NewClient builds a Client against baseURL whose requests carry the cookies in jar.
// An empty baseURL means DefaultBaseURL.
func NewClient(baseURL string, jar http.CookieJar) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Jar: jar},
		userAgent: "ogs-notify/" + buildinfo.Version,
	}, nil
}

// Login exchanges username and password for session cookies, which land in the jar.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("encode login request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, loginPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: login returned status %d", ErrAuth, resp.StatusCode)
	}
	return nil
}

// CurrentUser returns the account the session belongs to.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.get(ctx, mePath, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ActiveGames returns every game the account has in progress, whoever's turn it is.
func (c *Client) ActiveGames(ctx context.Context) ([]models.Game, error) {
	var payload overviewResponse
	if err := c.get(ctx, overviewPath, &payload); err != nil {
		return nil, err
	}
	return payload.ActiveGames, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d, the session may have expired", ErrAuth, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s returned status %d", ErrNetwork, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrDecode, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	return resp, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q needs a scheme and host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
