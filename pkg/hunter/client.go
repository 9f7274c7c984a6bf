// Package hunter provides access to the Hunter.io v2 email-finder API.
package hunter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.hunter.io/v2"

// ErrRateLimited is returned when Hunter answers 429.
var ErrRateLimited = eris.New("hunter: rate limited")

// Client performs Hunter.io lookups.
type Client interface {
	// FindEmail looks up the most likely email for a person at a domain.
	// A nil result with a nil error means Hunter had no finding.
	FindEmail(ctx context.Context, domain, firstName, lastName string) (*Finding, error)
}

// Finding is the email-finder result.
type Finding struct {
	Email string `json:"email"`
	Score int    `json:"score"`
}

type findResponse struct {
	Data Finding `json:"data"`
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

// NewClient creates a Hunter.io API client.
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

func (c *httpClient) FindEmail(ctx context.Context, domain, firstName, lastName string) (*Finding, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("first_name", firstName)
	q.Set("last_name", lastName)
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/email-finder?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: read response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("hunter: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result findResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal response")
	}
	if result.Data.Email == "" {
		return nil, nil
	}
	return &result.Data, nil
}
