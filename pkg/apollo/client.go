// Package apollo provides access to the Apollo.io people-match API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.apollo.io/v1"

// ErrRateLimited is returned when Apollo answers 429.
var ErrRateLimited = eris.New("apollo: rate limited")

// Client performs Apollo.io person matches.
type Client interface {
	// MatchPerson matches a person by name and employer. A nil result with
	// a nil error means no match was found.
	MatchPerson(ctx context.Context, req MatchRequest) (*Person, error)
}

// MatchRequest identifies the person to match.
type MatchRequest struct {
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name"`
	LinkedInURL      string `json:"linkedin_url,omitempty"`
}

// Person is the matched contact.
type Person struct {
	Email string `json:"email"`
	Title string `json:"title"`
}

type matchRequestBody struct {
	APIKey           string `json:"api_key"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name"`
	LinkedInURL      string `json:"linkedin_url,omitempty"`
}

type matchResponse struct {
	Person *Person `json:"person"`
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

// NewClient creates an Apollo.io API client.
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

func (c *httpClient) MatchPerson(ctx context.Context, req MatchRequest) (*Person, error) {
	body, err := json.Marshal(matchRequestBody{
		APIKey:           c.apiKey,
		Name:             req.Name,
		OrganizationName: req.OrganizationName,
		LinkedInURL:      req.LinkedInURL,
	})
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/people/match", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: read response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("apollo: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result matchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal response")
	}
	if result.Person == nil || result.Person.Email == "" {
		return nil, nil
	}
	return result.Person, nil
}
