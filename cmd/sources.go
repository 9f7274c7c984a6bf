package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/contact-cli/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show which lookup sources are configured",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tCREDENTIAL\tSTATUS")
		for _, row := range sourceStatus(cfg.Sources) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.name, row.credential, row.status)
		}
		return w.Flush()
	},
}

type sourceRow struct {
	name       string
	credential string
	status     string
}

// sourceStatus reports each source's readiness. Search, pattern guessing,
// and SMTP verification need no credentials and are always available;
// GitHub works unauthenticated but hits a much lower rate limit.
func sourceStatus(src config.SourcesConfig) []sourceRow {
	keyed := func(name, credential, key string) sourceRow {
		status := "not configured"
		if key != "" {
			status = "configured"
		}
		return sourceRow{name: name, credential: credential, status: status}
	}

	rows := []sourceRow{
		keyed("hunter.io", "CONTACT_SOURCES_HUNTER_API_KEY", src.HunterKey),
		keyed("apollo.io", "CONTACT_SOURCES_APOLLO_API_KEY", src.ApolloKey),
		keyed("rocketreach", "CONTACT_SOURCES_ROCKETREACH_API_KEY", src.RocketReachKey),
		keyed("clearbit", "CONTACT_SOURCES_CLEARBIT_API_KEY", src.ClearbitKey),
	}

	github := keyed("github", "CONTACT_SOURCES_GITHUB_TOKEN", src.GitHubToken)
	if src.GitHubToken == "" {
		github.status = "unauthenticated (low rate limit)"
	}
	rows = append(rows, github)

	rows = append(rows,
		sourceRow{name: "google_search", credential: "-", status: "always available"},
		sourceRow{name: "pattern_guess", credential: "-", status: "always available"},
	)
	return rows
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
