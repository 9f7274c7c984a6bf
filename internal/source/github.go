package source

import (
	"context"
	"errors"
	"strings"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/githubapi"
)

// maxProfileChecks caps how many search hits get their profile fetched.
const maxProfileChecks = 3

// techEmployers gates the GitHub lookup: profile scraping only pays off for
// engineering-heavy companies, so anything else is skipped without a
// request. Precision trade-off, not a correctness rule.
var techEmployers = []string{"google", "amazon", "microsoft", "apple", "openai", "meta", "facebook"}

// GitHub resolves emails from public GitHub profiles matching the
// contact's name. Public profile emails are self-reported, graded medium.
type GitHub struct {
	client  githubapi.Client
	limiter *ratelimit.Limiter
}

// NewGitHub creates the GitHub adapter.
func NewGitHub(client githubapi.Client, limiter *ratelimit.Limiter) *GitHub {
	return &GitHub{client: client, limiter: limiter}
}

func (g *GitHub) Source() model.Source { return model.SourceGitHub }

func (g *GitHub) Resolve(ctx context.Context, contact model.Contact) Outcome {
	if !isTechEmployer(contact.Company) {
		return skipped(g.Source(), "company not in tech employer list")
	}

	if err := g.limiter.Wait(ctx, "github"); err != nil {
		return failed(g.Source(), err)
	}

	users, err := g.client.SearchUsers(ctx, contact.Name, maxProfileChecks)
	if err != nil {
		if errors.Is(err, githubapi.ErrRateLimited) {
			return rateLimited(g.Source())
		}
		return failed(g.Source(), err)
	}

	var cands []model.Candidate
	for _, u := range users {
		if u.Login == "" {
			continue
		}
		if err := g.limiter.Wait(ctx, "github"); err != nil {
			break
		}
		profile, err := g.client.GetUser(ctx, u.Login)
		if err != nil {
			if errors.Is(err, githubapi.ErrRateLimited) {
				break
			}
			continue
		}
		if profile.Email == "" {
			continue
		}
		cands = append(cands, model.Candidate{
			Email:      profile.Email,
			Source:     g.Source(),
			Confidence: model.ConfidenceMedium,
		})
	}

	if len(cands) == 0 {
		return empty(g.Source())
	}
	return found(g.Source(), cands)
}

func isTechEmployer(company string) bool {
	lower := strings.ToLower(company)
	for _, t := range techEmployers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
