// Package githubapi provides the subset of the GitHub REST API used for
// public profile lookups: user search and single-user fetch.
package githubapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.github.com"

// ErrRateLimited is returned when GitHub answers 429 or a 403 abuse block.
var ErrRateLimited = eris.New("githubapi: rate limited")

// Client performs GitHub user lookups.
type Client interface {
	// SearchUsers searches public users by free-text query.
	SearchUsers(ctx context.Context, query string, limit int) ([]User, error)
	// GetUser fetches a single user's public profile.
	GetUser(ctx context.Context, login string) (*User, error)
}

// User is a public GitHub profile.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type searchResponse struct {
	Items []User `json:"items"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithToken sets a bearer token for authenticated (higher-limit) requests.
func WithToken(token string) Option {
	return func(c *httpClient) {
		c.token = token
	}
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a GitHub API client. Unauthenticated by default; see
// WithToken.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	q := url.Values{}
	q.Set("q", query)

	var result searchResponse
	if err := c.get(ctx, "/search/users?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	if limit > 0 && len(result.Items) > limit {
		result.Items = result.Items[:limit]
	}
	return result.Items, nil
}

func (c *httpClient) GetUser(ctx context.Context, login string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(login), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "githubapi: create request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "githubapi: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "githubapi: read response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		// GitHub signals both secondary rate limits and abuse blocks as 403.
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return eris.Errorf("githubapi: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "githubapi: unmarshal response")
	}
	return nil
}
