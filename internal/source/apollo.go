package source

import (
	"context"
	"errors"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/apollo"
)

// Apollo resolves emails via the Apollo.io people-match endpoint. Apollo
// only returns verified contact records, so a hit is graded high.
type Apollo struct {
	client  apollo.Client
	limiter *ratelimit.Limiter
}

// NewApollo creates the Apollo adapter. A nil client means no credential
// was configured.
func NewApollo(client apollo.Client, limiter *ratelimit.Limiter) *Apollo {
	return &Apollo{client: client, limiter: limiter}
}

func (a *Apollo) Source() model.Source { return model.SourceApollo }

func (a *Apollo) Resolve(ctx context.Context, contact model.Contact) Outcome {
	if a.client == nil {
		return skipped(a.Source(), "no credential")
	}

	if err := a.limiter.Wait(ctx, "apollo"); err != nil {
		return failed(a.Source(), err)
	}

	person, err := a.client.MatchPerson(ctx, apollo.MatchRequest{
		Name:             contact.Name,
		OrganizationName: contact.Company,
		LinkedInURL:      contact.LinkedInURL,
	})
	if err != nil {
		if errors.Is(err, apollo.ErrRateLimited) {
			return rateLimited(a.Source())
		}
		return failed(a.Source(), err)
	}
	if person == nil {
		return empty(a.Source())
	}

	return found(a.Source(), []model.Candidate{{
		Email:      person.Email,
		Source:     a.Source(),
		Confidence: model.ConfidenceHigh,
	}})
}
