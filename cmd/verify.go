package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotisserie/eris"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Probe one email address for deliverability",
	Long: `Checks whether a mailbox accepts mail by resolving MX records and
issuing a RCPT TO over SMTP. A rejection or unreachable server reports
the address as not deliverable; it is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		ok, err := newProber(cfg).Probe(cmd.Context(), email)
		if err != nil {
			return eris.Wrap(err, "verify")
		}

		if ok {
			fmt.Printf("%s: deliverable\n", email)
		} else {
			fmt.Printf("%s: not deliverable\n", email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
