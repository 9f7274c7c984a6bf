// Package gsearch fetches public Google search result pages and reduces
// them to visible text for downstream pattern scanning.
package gsearch

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://www.google.com"

	// Plain library UAs get served a consent interstitial with no results.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// ErrRateLimited is returned when the search engine answers 429.
var ErrRateLimited = eris.New("gsearch: rate limited")

// Client fetches search result text.
type Client interface {
	// Search runs one query and returns the result page's visible text.
	Search(ctx context.Context, query string) (string, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default search base URL.
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
	baseURL string
	http    *http.Client
}

// NewClient creates a search page client. The timeout is kept shorter than
// the API clients' since scrape latency is not worth waiting out.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?q="+url.QueryEscape(query), nil)
	if err != nil {
		return "", eris.Wrap(err, "gsearch: create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "gsearch: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return "", eris.Errorf("gsearch: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "gsearch: parse page")
	}
	doc.Find("script, style, noscript").Remove()

	return strings.TrimSpace(doc.Text()), nil
}
