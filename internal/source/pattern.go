package source

import (
	"context"
	"fmt"

	"github.com/sells-group/contact-cli/internal/domain"
	"github.com/sells-group/contact-cli/internal/model"
)

// Pattern synthesizes candidate addresses from common corporate naming
// conventions. It is the orchestrator's fallback when no other source
// produced a high or medium candidate, and it makes no network calls.
type Pattern struct{}

// NewPattern creates the pattern generator.
func NewPattern() *Pattern { return &Pattern{} }

func (p *Pattern) Source() model.Source { return model.SourcePattern }

// Resolve generates exactly eight low-confidence guesses in a fixed,
// reproducible order. Names with fewer than two tokens cannot form a
// first/last split and yield nothing.
func (p *Pattern) Resolve(_ context.Context, contact model.Contact) Outcome {
	first, last, ok := splitName(foldName(contact.Name))
	if !ok {
		return empty(p.Source())
	}

	dom := domain.Resolve(contact.Company)
	fi := initial(first)
	li := initial(last)
	locals := []string{
		fmt.Sprintf("%s.%s", first, last),
		first + last,
		fi + last,
		fmt.Sprintf("%s_%s", first, last),
		first,
		fmt.Sprintf("%s.%s", last, first),
		fmt.Sprintf("%s.%s", fi, last),
		first + li,
	}

	cands := make([]model.Candidate, 0, len(locals))
	for _, local := range locals {
		cands = append(cands, model.Candidate{
			Email:      local + "@" + dom,
			Source:     p.Source(),
			Confidence: model.ConfidenceLow,
		})
	}
	return found(p.Source(), cands)
}

// initial returns the first rune of a token. Tokens from strings.Fields are
// never empty, but names folded to non-ASCII still slice correctly by rune.
func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
