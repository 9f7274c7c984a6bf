// Package source implements the lookup adapters that propose email
// candidates for a contact. Each adapter queries one external provider and
// reports an explicit outcome; adapters never let a provider failure escape
// past their own boundary.
package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/model"
)

// Status classifies an adapter outcome.
type Status int

const (
	// StatusFound means the adapter produced at least one candidate.
	StatusFound Status = iota
	// StatusEmpty means the provider was queried and had no finding.
	StatusEmpty
	// StatusSkipped means the adapter did not query at all (no credential,
	// or the contact is out of the adapter's applicability window).
	StatusSkipped
	// StatusRateLimited means the provider explicitly refused for quota.
	// The source is skipped for this contact; retries are a caller concern
	// across separate runs.
	StatusRateLimited
	// StatusFailed means a transient fault (timeout, connection error,
	// malformed payload). Treated as "no finding" by the orchestrator.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusEmpty:
		return "empty"
	case StatusSkipped:
		return "skipped"
	case StatusRateLimited:
		return "rate_limited"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one adapter attempt for one contact.
type Outcome struct {
	Source     model.Source
	Status     Status
	Candidates []model.Candidate
	Note       string
}

// Audit renders the sourcesChecked entry for this outcome.
func (o Outcome) Audit() string {
	if o.Status == StatusSkipped {
		note := o.Note
		if note == "" {
			note = "skipped"
		}
		return string(o.Source) + " (skipped: " + note + ")"
	}
	return string(o.Source)
}

// Adapter resolves email candidates for a contact from one provider.
type Adapter interface {
	Source() model.Source
	Resolve(ctx context.Context, contact model.Contact) Outcome
}

func found(src model.Source, cands []model.Candidate) Outcome {
	return Outcome{Source: src, Status: StatusFound, Candidates: cands}
}

func empty(src model.Source) Outcome {
	return Outcome{Source: src, Status: StatusEmpty}
}

func skipped(src model.Source, note string) Outcome {
	return Outcome{Source: src, Status: StatusSkipped, Note: note}
}

func rateLimited(src model.Source) Outcome {
	zap.L().Warn("source: provider rate limited", zap.String("source", string(src)))
	return Outcome{Source: src, Status: StatusRateLimited, Note: "provider rate limited"}
}

func failed(src model.Source, err error) Outcome {
	zap.L().Warn("source: lookup failed",
		zap.String("source", string(src)),
		zap.Error(err),
	)
	return Outcome{Source: src, Status: StatusFailed, Note: err.Error()}
}
