package source

import (
	"context"
	"errors"

	"github.com/sells-group/contact-cli/internal/domain"
	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/clearbit"
)

// Clearbit resolves emails via the Clearbit Prospector people-find
// endpoint, keyed by resolved company domain plus name.
type Clearbit struct {
	client  clearbit.Client
	limiter *ratelimit.Limiter
}

// NewClearbit creates the Clearbit adapter. A nil client means no
// credential was configured.
func NewClearbit(client clearbit.Client, limiter *ratelimit.Limiter) *Clearbit {
	return &Clearbit{client: client, limiter: limiter}
}

func (c *Clearbit) Source() model.Source { return model.SourceClearbit }

func (c *Clearbit) Resolve(ctx context.Context, contact model.Contact) Outcome {
	if c.client == nil {
		return skipped(c.Source(), "no credential")
	}

	if err := c.limiter.Wait(ctx, "generic"); err != nil {
		return failed(c.Source(), err)
	}

	person, err := c.client.FindPerson(ctx, domain.Resolve(contact.Company), contact.Name)
	if err != nil {
		if errors.Is(err, clearbit.ErrRateLimited) {
			return rateLimited(c.Source())
		}
		return failed(c.Source(), err)
	}
	if person == nil {
		return empty(c.Source())
	}

	return found(c.Source(), []model.Candidate{{
		Email:      person.Email,
		Source:     c.Source(),
		Confidence: model.ConfidenceHigh,
	}})
}
