package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contact-cli/internal/contacts"
	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/resolve"
	"github.com/sells-group/contact-cli/internal/store"
)

var (
	findInput       string
	findOutput      string
	findLimit       int
	findConcurrency int
	findVerify      bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Resolve email candidates for contacts from a CSV",
	Long: `Reads contacts from a CSV (Name column required), queries every
configured source for each contact, and writes the ranked candidates
back out as a CSV.

Sources without credentials are skipped, never treated as errors.

Examples:
  # Resolve the first 10 contacts
  contact-cli find --input contacts.csv --limit 10

  # Resolve and SMTP-verify high/medium candidates
  contact-cli find --input contacts.csv --verify`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		list, err := contacts.Load(findInput)
		if err != nil {
			return eris.Wrap(err, "find: load contacts")
		}
		if findLimit > 0 && findLimit < len(list) {
			list = list[:findLimit]
		}
		if len(list) == 0 {
			zap.L().Info("no contacts to resolve")
			return nil
		}

		// Optional audit store.
		var st store.Store
		if cfg.Store.Path != "" {
			st, err = store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return eris.Wrap(err, "find: open store")
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "find: migrate store")
			}
		}

		resolver := newResolver(cfg, findVerify)

		zap.L().Info("resolving contacts",
			zap.Int("contacts", len(list)),
			zap.Int("concurrency", findConcurrency),
			zap.Bool("verify", findVerify),
		)

		// Results land in fixed slots so output order matches input order.
		results := make([]*model.Result, len(list))
		var resolved atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(findConcurrency)
		for i, contact := range list {
			g.Go(func() error {
				results[i] = resolveOne(gctx, resolver, st, contact)
				if len(results[i].Candidates) > 0 {
					resolved.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "find: batch")
		}

		if err := contacts.Write(findOutput, results); err != nil {
			return eris.Wrap(err, "find: write output")
		}

		zap.L().Info("find complete",
			zap.Int("contacts", len(list)),
			zap.Int64("with_candidates", resolved.Load()),
			zap.String("output", findOutput),
		)
		return nil
	},
}

// resolveOne runs resolution for a single contact, recording the run in the
// store when one is configured. Store failures are logged, never fatal: the
// audit trail must not break the batch.
func resolveOne(ctx context.Context, resolver *resolve.Resolver, st store.Store, contact model.Contact) *model.Result {
	log := zap.L().With(zap.String("contact", contact.Key()))

	var runID string
	if st != nil {
		id, err := st.CreateRun(ctx, contact)
		if err != nil {
			log.Warn("create run failed", zap.Error(err))
		} else {
			runID = id
		}
	}

	result := resolver.Resolve(ctx, contact)

	if st != nil && runID != "" {
		if err := st.CompleteRun(ctx, runID, result); err != nil {
			log.Warn("complete run failed", zap.Error(err))
		}
	}

	return result
}

func init() {
	findCmd.Flags().StringVar(&findInput, "input", "", "input CSV with a Name column (required)")
	findCmd.Flags().StringVar(&findOutput, "output", "contacts_with_emails.csv", "output CSV path")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "max contacts to resolve (0 = all)")
	findCmd.Flags().IntVar(&findConcurrency, "concurrency", 4, "contacts resolved in parallel")
	findCmd.Flags().BoolVar(&findVerify, "verify", false, "SMTP-verify high/medium candidates")
	_ = findCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(findCmd)
}
