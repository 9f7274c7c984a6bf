// Package resolve orchestrates the lookup adapters for one contact at a
// time: fan-out, candidate merging, the pattern fallback, and optional
// mailbox verification.
package resolve

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/source"
	"github.com/sells-group/contact-cli/internal/verify"
)

const (
	defaultWorkers = 6
	defaultTimeout = 60 * time.Second
)

// Options is the immutable configuration of a Resolver. The only shared
// mutable state across contacts lives inside the rate limiter the adapters
// hold; the Resolver itself is stateless.
type Options struct {
	// Adapters are the network-backed sources in their fixed invocation
	// order. Order decides which duplicate's provenance survives dedup.
	Adapters []source.Adapter
	// Fallback is the pattern generator, invoked only when no adapter
	// produced a high or medium candidate.
	Fallback source.Adapter
	// Prober verifies candidates when Verify is set.
	Prober verify.Prober
	// Verify enables the mailbox probe for high/medium candidates.
	Verify bool
	// Workers bounds concurrent adapter calls per contact.
	Workers int
	// Timeout is the outer per-contact deadline; a stalled source cannot
	// stall the run past it.
	Timeout time.Duration
}

// Resolver resolves email candidates for contacts.
type Resolver struct {
	opts Options
}

// New creates a Resolver, applying defaults for unset knobs.
func New(opts Options) *Resolver {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Resolver{opts: opts}
}

// Resolve runs every adapter for one contact and returns the terminal
// result. It never fails: a contact with zero candidates is a valid
// outcome, and individual adapter faults only shrink the candidate set.
func (r *Resolver) Resolve(ctx context.Context, contact model.Contact) *model.Result {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	log := zap.L().With(zap.String("contact", contact.Key()))
	log.Info("resolve: starting lookup", zap.Int("sources", len(r.opts.Adapters)))

	// Fan out across sources. Each outcome lands in its fixed slot so the
	// merge below stays deterministic regardless of completion order.
	outcomes := make([]source.Outcome, len(r.opts.Adapters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, adapter := range r.opts.Adapters {
		g.Go(func() error {
			outcomes[i] = adapter.Resolve(gctx, contact)
			return nil
		})
	}
	_ = g.Wait()

	result := &model.Result{Contact: contact}
	seen := make(map[string]bool)
	for _, out := range outcomes {
		r.merge(result, out, seen)
	}

	// Fallback fires only when nothing trustworthy came back.
	if !result.HasQualified() && r.opts.Fallback != nil {
		out := r.opts.Fallback.Resolve(ctx, contact)
		r.merge(result, out, seen)
		log.Info("resolve: pattern fallback generated candidates",
			zap.Int("count", len(out.Candidates)),
		)
	}

	if r.opts.Verify && r.opts.Prober != nil {
		r.verifyCandidates(ctx, result, log)
	}

	log.Info("resolve: lookup complete",
		zap.Int("candidates", len(result.Candidates)),
		zap.Bool("qualified", result.HasQualified()),
	)
	return result
}

// merge appends an outcome's audit entry and its not-yet-seen candidates.
// First-seen-wins: a later duplicate's provenance is discarded.
func (r *Resolver) merge(result *model.Result, out source.Outcome, seen map[string]bool) {
	result.SourcesChecked = append(result.SourcesChecked, out.Audit())
	for _, cand := range out.Candidates {
		key := cand.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Candidates = append(result.Candidates, cand)
	}
}

// verifyCandidates probes high/medium candidates. Low-confidence pattern
// guesses are never probed; they are statistically unlikely and probes are
// a scarce resource. Confidence is never changed here.
func (r *Resolver) verifyCandidates(ctx context.Context, result *model.Result, log *zap.Logger) {
	for i := range result.Candidates {
		cand := &result.Candidates[i]
		if cand.Confidence != model.ConfidenceHigh && cand.Confidence != model.ConfidenceMedium {
			continue
		}
		ok, err := r.opts.Prober.Probe(ctx, cand.Email)
		if err != nil {
			log.Debug("resolve: probe error", zap.String("email", cand.Email), zap.Error(err))
			continue
		}
		cand.Verified = ok
		if ok {
			log.Info("resolve: candidate verified", zap.String("email", cand.Email))
		}
	}
}
