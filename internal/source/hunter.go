package source

import (
	"context"
	"errors"
	"strings"

	"github.com/sells-group/contact-cli/internal/domain"
	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/pkg/hunter"
)

// ScoreThresholds maps Hunter's 0-100 match score onto confidence grades.
// The 80/50 cut points are heuristics inherited from field use, kept
// configurable rather than trusted.
type ScoreThresholds struct {
	High   int
	Medium int
}

// DefaultScoreThresholds returns the standard 80/50 cut points.
func DefaultScoreThresholds() ScoreThresholds {
	return ScoreThresholds{High: 80, Medium: 50}
}

// Hunter resolves emails via the Hunter.io email-finder endpoint.
type Hunter struct {
	client  hunter.Client
	limiter *ratelimit.Limiter
	scores  ScoreThresholds
}

// NewHunter creates the Hunter adapter. A nil client means no credential
// was configured and the adapter reports itself skipped.
func NewHunter(client hunter.Client, limiter *ratelimit.Limiter, scores ScoreThresholds) *Hunter {
	return &Hunter{client: client, limiter: limiter, scores: scores}
}

func (h *Hunter) Source() model.Source { return model.SourceHunter }

func (h *Hunter) Resolve(ctx context.Context, contact model.Contact) Outcome {
	if h.client == nil {
		return skipped(h.Source(), "no credential")
	}

	parts := strings.Fields(contact.Name)
	if len(parts) == 0 {
		return empty(h.Source())
	}
	firstName := parts[0]
	lastName := ""
	if len(parts) > 1 {
		lastName = parts[len(parts)-1]
	}

	if err := h.limiter.Wait(ctx, "hunter"); err != nil {
		return failed(h.Source(), err)
	}

	finding, err := h.client.FindEmail(ctx, domain.Resolve(contact.Company), firstName, lastName)
	if err != nil {
		if errors.Is(err, hunter.ErrRateLimited) {
			return rateLimited(h.Source())
		}
		return failed(h.Source(), err)
	}
	if finding == nil {
		return empty(h.Source())
	}

	return found(h.Source(), []model.Candidate{{
		Email:      finding.Email,
		Source:     h.Source(),
		Confidence: h.confidence(finding.Score),
	}})
}

func (h *Hunter) confidence(score int) model.Confidence {
	switch {
	case score > h.scores.High:
		return model.ConfidenceHigh
	case score > h.scores.Medium:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
