// Package clearbit provides access to the Clearbit Prospector API.
package clearbit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://prospector.clearbit.com/v1"

// ErrRateLimited is returned when Clearbit answers 429.
var ErrRateLimited = eris.New("clearbit: rate limited")

// Client performs Clearbit Prospector lookups.
type Client interface {
	// FindPerson finds a person at a domain by name. A nil result with a
	// nil error means no match was found.
	FindPerson(ctx context.Context, domain, name string) (*Person, error)
}

// Person is the prospector match.
type Person struct {
	Email string `json:"email"`
	Title string `json:"title"`
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Clearbit API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
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

func (c *httpClient) FindPerson(ctx context.Context, domain, name string) (*Person, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("name", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/people/find?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: read response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("clearbit: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result Person
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "clearbit: unmarshal response")
	}
	if result.Email == "" {
		return nil, nil
	}
	return &result, nil
}
