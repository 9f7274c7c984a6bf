package resolve

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/source"
)

// stubAdapter returns a fixed outcome, optionally after a delay.
type stubAdapter struct {
	src     model.Source
	outcome source.Outcome
	delay   time.Duration
	calls   int
}

func (s *stubAdapter) Source() model.Source { return s.src }

func (s *stubAdapter) Resolve(ctx context.Context, _ model.Contact) source.Outcome {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return source.Outcome{Source: s.src, Status: source.StatusFailed, Note: ctx.Err().Error()}
		}
	}
	return s.outcome
}

// stubProber records probes and accepts a fixed set of addresses.
type stubProber struct {
	accept map[string]bool
	probed []string
}

func (p *stubProber) Probe(_ context.Context, email string) (bool, error) {
	p.probed = append(p.probed, email)
	return p.accept[email], nil
}

func foundOutcome(src model.Source, conf model.Confidence, emails ...string) source.Outcome {
	out := source.Outcome{Source: src, Status: source.StatusFound}
	for _, e := range emails {
		out.Candidates = append(out.Candidates, model.Candidate{Email: e, Source: src, Confidence: conf})
	}
	return out
}

func emptyOutcome(src model.Source) source.Outcome {
	return source.Outcome{Source: src, Status: source.StatusEmpty}
}

var contact = model.Contact{Name: "Jane Unknown", Company: "TinyStartup Inc"}

func TestResolveDirectoryHitSkipsFallback(t *testing.T) {
	hunter := &stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "j.doe@acme.com")}
	apollo := &stubAdapter{src: model.SourceApollo, outcome: emptyOutcome(model.SourceApollo)}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: foundOutcome(model.SourcePattern, model.ConfidenceLow, "jane.unknown@tinystartupinc.com")}

	r := New(Options{Adapters: []source.Adapter{hunter, apollo}, Fallback: pattern})
	result := r.Resolve(context.Background(), contact)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "j.doe@acme.com", result.Candidates[0].Email)
	assert.Equal(t, model.ConfidenceHigh, result.Candidates[0].Confidence)
	assert.Contains(t, result.SourcesChecked, "hunter.io")
	assert.Contains(t, result.SourcesChecked, "apollo.io")
	assert.Zero(t, pattern.calls)
}

func TestResolveFallbackWhenNothingQualified(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: emptyOutcome(model.SourceHunter)},
		&stubAdapter{src: model.SourceApollo, outcome: emptyOutcome(model.SourceApollo)},
	}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: foundOutcome(model.SourcePattern, model.ConfidenceLow,
		"jane.unknown@tinystartupinc.com", "janeunknown@tinystartupinc.com")}

	r := New(Options{Adapters: adapters, Fallback: pattern})
	result := r.Resolve(context.Background(), contact)

	require.Len(t, result.Candidates, 2)
	for _, c := range result.Candidates {
		assert.Equal(t, model.ConfidenceLow, c.Confidence)
		assert.Equal(t, model.SourcePattern, c.Source)
	}
	assert.Equal(t, 1, pattern.calls)
	assert.Contains(t, result.SourcesChecked, "pattern_guess")
}

func TestResolveFallbackFiresDespiteLowOnlyCandidates(t *testing.T) {
	// A low-confidence directory result does not suppress the fallback.
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceLow, "weak@acme.com")},
	}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: foundOutcome(model.SourcePattern, model.ConfidenceLow, "jane@acme.com")}

	r := New(Options{Adapters: adapters, Fallback: pattern})
	result := r.Resolve(context.Background(), contact)

	assert.Equal(t, 1, pattern.calls)
	assert.Len(t, result.Candidates, 2)
}

func TestResolveDedupFirstSeenWins(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "J.Doe@Acme.com")},
		&stubAdapter{src: model.SourceApollo, outcome: foundOutcome(model.SourceApollo, model.ConfidenceHigh, "j.doe@acme.com")},
	}

	r := New(Options{Adapters: adapters})
	result := r.Resolve(context.Background(), contact)

	require.Len(t, result.Candidates, 1)
	// Earliest in invocation order keeps its provenance and casing.
	assert.Equal(t, "J.Doe@Acme.com", result.Candidates[0].Email)
	assert.Equal(t, model.SourceHunter, result.Candidates[0].Source)
}

func TestResolveDedupIsCaseInsensitiveAcrossFallback(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceWebSearch, outcome: foundOutcome(model.SourceWebSearch, model.ConfidenceLow, "jane.unknown@tinystartupinc.com")},
	}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: foundOutcome(model.SourcePattern, model.ConfidenceLow,
		"Jane.Unknown@tinystartupinc.com", "janeunknown@tinystartupinc.com")}

	r := New(Options{Adapters: adapters, Fallback: pattern})
	result := r.Resolve(context.Background(), contact)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "jane.unknown@tinystartupinc.com", result.Candidates[0].Email)
	assert.Equal(t, "janeunknown@tinystartupinc.com", result.Candidates[1].Email)
}

func TestResolveNoDuplicateEmailsInvariant(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "a@x.com", "b@x.com")},
		&stubAdapter{src: model.SourceApollo, outcome: foundOutcome(model.SourceApollo, model.ConfidenceHigh, "A@X.com", "c@x.com")},
		&stubAdapter{src: model.SourceRocketReach, outcome: foundOutcome(model.SourceRocketReach, model.ConfidenceHigh, "B@x.com")},
	}

	r := New(Options{Adapters: adapters})
	result := r.Resolve(context.Background(), contact)

	seen := make(map[string]bool)
	for _, c := range result.Candidates {
		lower := strings.ToLower(c.Email)
		assert.False(t, seen[lower], "duplicate email %s", c.Email)
		seen[lower] = true
	}
	assert.Len(t, result.Candidates, 3)
}

func TestResolveAuditTrailCoversEveryAdapter(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: source.Outcome{Source: model.SourceHunter, Status: source.StatusSkipped, Note: "no credential"}},
		&stubAdapter{src: model.SourceApollo, outcome: source.Outcome{Source: model.SourceApollo, Status: source.StatusFailed, Note: "boom"}},
		&stubAdapter{src: model.SourceWebSearch, outcome: emptyOutcome(model.SourceWebSearch)},
	}

	pattern := &stubAdapter{src: model.SourcePattern, outcome: emptyOutcome(model.SourcePattern)}

	r := New(Options{Adapters: adapters, Fallback: pattern})
	result := r.Resolve(context.Background(), contact)

	assert.Equal(t, []string{
		"hunter.io (skipped: no credential)",
		"apollo.io",
		"google_search",
		"pattern_guess",
	}, result.SourcesChecked)
}

func TestResolveZeroCandidatesIsValid(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: emptyOutcome(model.SourceHunter)},
	}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: emptyOutcome(model.SourcePattern)}

	r := New(Options{Adapters: adapters, Fallback: pattern})
	result := r.Resolve(context.Background(), model.Contact{Name: "Madonna", Company: "Acme"})

	assert.Empty(t, result.Candidates)
	assert.NotEmpty(t, result.SourcesChecked)
}

func TestResolveVerificationOnlyProbesQualified(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "high@acme.com")},
		&stubAdapter{src: model.SourceWebSearch, outcome: foundOutcome(model.SourceWebSearch, model.ConfidenceMedium, "med@acme.com")},
	}
	prober := &stubProber{accept: map[string]bool{"high@acme.com": true}}

	r := New(Options{Adapters: adapters, Prober: prober, Verify: true})
	result := r.Resolve(context.Background(), contact)

	assert.ElementsMatch(t, []string{"high@acme.com", "med@acme.com"}, prober.probed)

	byEmail := make(map[string]model.Candidate)
	for _, c := range result.Candidates {
		byEmail[c.Email] = c
	}
	assert.True(t, byEmail["high@acme.com"].Verified)
	assert.False(t, byEmail["med@acme.com"].Verified)
	// Verification never touches confidence.
	assert.Equal(t, model.ConfidenceHigh, byEmail["high@acme.com"].Confidence)
	assert.Equal(t, model.ConfidenceMedium, byEmail["med@acme.com"].Confidence)
}

func TestResolveVerificationSkipsPatternGuesses(t *testing.T) {
	adapters := []source.Adapter{
		&stubAdapter{src: model.SourceHunter, outcome: emptyOutcome(model.SourceHunter)},
	}
	pattern := &stubAdapter{src: model.SourcePattern, outcome: foundOutcome(model.SourcePattern, model.ConfidenceLow, "jane@acme.com")}
	prober := &stubProber{accept: map[string]bool{"jane@acme.com": true}}

	r := New(Options{Adapters: adapters, Fallback: pattern, Prober: prober, Verify: true})
	result := r.Resolve(context.Background(), contact)

	assert.Empty(t, prober.probed)
	assert.False(t, result.Candidates[0].Verified)
}

func TestResolveDeadlineCancelsStallers(t *testing.T) {
	fast := &stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "fast@acme.com")}
	slow := &stubAdapter{src: model.SourceApollo, outcome: foundOutcome(model.SourceApollo, model.ConfidenceHigh, "slow@acme.com"), delay: time.Second}

	r := New(Options{Adapters: []source.Adapter{fast, slow}, Timeout: 50 * time.Millisecond})
	start := time.Now()
	result := r.Resolve(context.Background(), contact)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	// The stalled adapter contributes nothing but the record still completes.
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "fast@acme.com", result.Candidates[0].Email)
	assert.Len(t, result.SourcesChecked, 2)
}

func TestResolveMergeOrderDeterministicUnderConcurrency(t *testing.T) {
	// Later adapters finishing first must not steal dedup priority.
	slowFirst := &stubAdapter{src: model.SourceHunter, outcome: foundOutcome(model.SourceHunter, model.ConfidenceHigh, "dup@acme.com"), delay: 20 * time.Millisecond}
	fastSecond := &stubAdapter{src: model.SourceApollo, outcome: foundOutcome(model.SourceApollo, model.ConfidenceHigh, "DUP@acme.com")}

	r := New(Options{Adapters: []source.Adapter{slowFirst, fastSecond}, Workers: 2})
	result := r.Resolve(context.Background(), contact)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, model.SourceHunter, result.Candidates[0].Source)
	assert.Equal(t, "dup@acme.com", result.Candidates[0].Email)
}
