package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jira-export/internal/secrets"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show configuration status and verify Jira credentials",
	Long: `Check prints the configured connection settings with credentials masked,
then performs an authenticated request against the Jira instance to
confirm the domain, email, and API token are valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Domain:    %s\n", cfg.Jira.Domain)
		fmt.Fprintf(out, "Email:     %s\n", secrets.MaskEmail(cfg.Jira.Email))
		fmt.Fprintf(out, "API token: %s\n", secrets.Mask(cfg.Jira.APIToken, 4))

		client := newClient(cfg.Jira)
		if err := client.TestConnection(cmd.Context()); err != nil {
			return fmt.Errorf("connection check failed: %w", err)
		}

		fmt.Fprintln(out, "Connection OK.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
