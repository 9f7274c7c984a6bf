// Package rocketreach provides access to the RocketReach person-lookup API.
package rocketreach

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.rocketreach.co/api/v2"

// ErrRateLimited is returned when RocketReach answers 429.
var ErrRateLimited = eris.New("rocketreach: rate limited")

// Client performs RocketReach person lookups.
type Client interface {
	// LookupPerson finds a person by name and current employer. An empty
	// slice with a nil error means no emails were found.
	LookupPerson(ctx context.Context, req LookupRequest) ([]string, error)
}

// LookupRequest identifies the person to look up.
type LookupRequest struct {
	Name            string
	CurrentEmployer string
	LinkedInURL     string
}

// lookupResponse tolerates both shapes RocketReach uses for the emails
// field: a list of objects with an "email" key, or a bare list of strings.
type lookupResponse struct {
	Emails []json.RawMessage `json:"emails"`
}

type emailEntry struct {
	Email string `json:"email"`
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

// NewClient creates a RocketReach API client.
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

func (c *httpClient) LookupPerson(ctx context.Context, req LookupRequest) ([]string, error) {
	q := url.Values{}
	q.Set("name", req.Name)
	q.Set("current_employer", req.CurrentEmployer)
	if req.LinkedInURL != "" {
		q.Set("linkedin_url", req.LinkedInURL)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/person/lookup?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "rocketreach: create request")
	}
	httpReq.Header.Set("Api-Key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "rocketreach: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "rocketreach: read response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("rocketreach: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result lookupResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "rocketreach: unmarshal response")
	}

	var emails []string
	for _, raw := range result.Emails {
		var entry emailEntry
		if err := json.Unmarshal(raw, &entry); err == nil && entry.Email != "" {
			emails = append(emails, entry.Email)
			continue
		}
		var plain string
		if err := json.Unmarshal(raw, &plain); err == nil && plain != "" {
			emails = append(emails, plain)
		}
	}
	return emails, nil
}
