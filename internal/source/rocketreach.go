package source

import (
	"context"
	"errors"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/rocketreach"
)

// RocketReach resolves emails via the RocketReach person-lookup endpoint.
// Returned addresses come from verified contact data, graded high.
type RocketReach struct {
	client  rocketreach.Client
	limiter *ratelimit.Limiter
}

// NewRocketReach creates the RocketReach adapter. A nil client means no
// credential was configured.
func NewRocketReach(client rocketreach.Client, limiter *ratelimit.Limiter) *RocketReach {
	return &RocketReach{client: client, limiter: limiter}
}

func (r *RocketReach) Source() model.Source { return model.SourceRocketReach }

func (r *RocketReach) Resolve(ctx context.Context, contact model.Contact) Outcome {
	if r.client == nil {
		return skipped(r.Source(), "no credential")
	}

	if err := r.limiter.Wait(ctx, "rocketreach"); err != nil {
		return failed(r.Source(), err)
	}

	emails, err := r.client.LookupPerson(ctx, rocketreach.LookupRequest{
		Name:            contact.Name,
		CurrentEmployer: contact.Company,
		LinkedInURL:     contact.LinkedInURL,
	})
	if err != nil {
		if errors.Is(err, rocketreach.ErrRateLimited) {
			return rateLimited(r.Source())
		}
		return failed(r.Source(), err)
	}
	if len(emails) == 0 {
		return empty(r.Source())
	}

	cands := make([]model.Candidate, 0, len(emails))
	for _, email := range emails {
		cands = append(cands, model.Candidate{
			Email:      email,
			Source:     r.Source(),
			Confidence: model.ConfidenceHigh,
		})
	}
	return found(r.Source(), cands)
}
