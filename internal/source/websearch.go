package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/gsearch"
)

// maxSearchQueries bounds scrape cost per contact.
const maxSearchQueries = 2

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// placeholderDomains are documentation/telemetry domains that show up in
// page markup but never belong to a real person.
var placeholderDomains = []string{"example.com", "sentry.io", "schema.org", "w3.org"}

// WebSearch scrapes public search results for email mentions. Scraped
// addresses are unverified authorship, so everything it finds is medium.
type WebSearch struct {
	client  gsearch.Client
	limiter *ratelimit.Limiter
}

// NewWebSearch creates the web-search adapter.
func NewWebSearch(client gsearch.Client, limiter *ratelimit.Limiter) *WebSearch {
	return &WebSearch{client: client, limiter: limiter}
}

func (w *WebSearch) Source() model.Source { return model.SourceWebSearch }

func (w *WebSearch) Resolve(ctx context.Context, contact model.Contact) Outcome {
	queries := []string{
		fmt.Sprintf("%q email", contact.Name),
		fmt.Sprintf("%q %s email", contact.Name, contact.Company),
	}

	seen := make(map[string]bool)
	var order []string
	limited := false

	for _, query := range queries[:maxSearchQueries] {
		if err := w.limiter.Wait(ctx, "google"); err != nil {
			return failed(w.Source(), err)
		}

		text, err := w.client.Search(ctx, query)
		if err != nil {
			if errors.Is(err, gsearch.ErrRateLimited) {
				limited = true
				break
			}
			zap.L().Warn("source: web search query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}

		for _, email := range emailPattern.FindAllString(text, -1) {
			lower := strings.ToLower(email)
			if seen[lower] || isPlaceholder(lower) {
				continue
			}
			seen[lower] = true
			order = append(order, lower)
		}
	}

	nameTokens := strings.Fields(strings.ToLower(contact.Name))
	var cands []model.Candidate
	for _, email := range order {
		if !containsAnyToken(email, nameTokens) {
			continue
		}
		cands = append(cands, model.Candidate{
			Email:      email,
			Source:     w.Source(),
			Confidence: model.ConfidenceMedium,
		})
	}

	switch {
	case len(cands) > 0:
		return found(w.Source(), cands)
	case limited:
		return rateLimited(w.Source())
	default:
		return empty(w.Source())
	}
}

func isPlaceholder(email string) bool {
	for _, d := range placeholderDomains {
		if strings.Contains(email, d) {
			return true
		}
	}
	return false
}

// containsAnyToken keeps only addresses that plausibly belong to the named
// person: at least one name token must appear in the address.
func containsAnyToken(email string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(email, tok) {
			return true
		}
	}
	return false
}
