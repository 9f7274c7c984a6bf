package main

import (
	"github.com/sells-group/contact-cli/internal/config"
	"github.com/sells-group/contact-cli/internal/ratelimit"
	"github.com/sells-group/contact-cli/internal/resolve"
	"github.com/sells-group/contact-cli/internal/source"
	"github.com/sells-group/contact-cli/internal/verify"
	"github.com/sells-group/contact-cli/pkg/apollo"
	"github.com/sells-group/contact-cli/pkg/clearbit"
	"github.com/sells-group/contact-cli/pkg/githubapi"
	"github.com/sells-group/contact-cli/pkg/gsearch"
	"github.com/sells-group/contact-cli/pkg/hunter"
	"github.com/sells-group/contact-cli/pkg/rocketreach"
)

// newResolver wires the adapter stack from configuration. API-backed
// adapters get a nil client when their credential is unset, which turns
// them into skips at resolve time rather than hard failures here.
//
// Adapter order is load-bearing: dedup keeps the provenance of whichever
// source is merged first.
func newResolver(cfg *config.Config, verifyCandidates bool) *resolve.Resolver {
	limiter := ratelimit.New(cfg.Resolve.RateIntervals())

	var hunterClient hunter.Client
	if cfg.Sources.HunterKey != "" {
		hunterClient = hunter.NewClient(cfg.Sources.HunterKey)
	}
	var apolloClient apollo.Client
	if cfg.Sources.ApolloKey != "" {
		apolloClient = apollo.NewClient(cfg.Sources.ApolloKey)
	}
	var rocketReachClient rocketreach.Client
	if cfg.Sources.RocketReachKey != "" {
		rocketReachClient = rocketreach.NewClient(cfg.Sources.RocketReachKey)
	}
	var clearbitClient clearbit.Client
	if cfg.Sources.ClearbitKey != "" {
		clearbitClient = clearbit.NewClient(cfg.Sources.ClearbitKey)
	}

	githubOpts := []githubapi.Option{}
	if cfg.Sources.GitHubToken != "" {
		githubOpts = append(githubOpts, githubapi.WithToken(cfg.Sources.GitHubToken))
	}

	scores := source.ScoreThresholds{
		High:   cfg.Resolve.ScoreHigh,
		Medium: cfg.Resolve.ScoreMedium,
	}

	adapters := []source.Adapter{
		source.NewHunter(hunterClient, limiter, scores),
		source.NewApollo(apolloClient, limiter),
		source.NewRocketReach(rocketReachClient, limiter),
		source.NewClearbit(clearbitClient, limiter),
		source.NewWebSearch(gsearch.NewClient(), limiter),
		source.NewGitHub(githubapi.NewClient(githubOpts...), limiter),
	}

	return resolve.New(resolve.Options{
		Adapters: adapters,
		Fallback: source.NewPattern(),
		Prober:   newProber(cfg),
		Verify:   verifyCandidates,
		Workers:  cfg.Resolve.Workers,
		Timeout:  cfg.Resolve.Timeout(),
	})
}

// newProber builds the SMTP prober with the configured probe identity.
func newProber(cfg *config.Config) verify.Prober {
	return verify.NewSMTP(
		verify.WithHelo(cfg.Verify.HeloDomain),
		verify.WithFrom(cfg.Verify.FromAddr),
	)
}
