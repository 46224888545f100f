package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jira-export/internal/archive"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Full-text search over archived issues",
	Long: `Find runs a ranked full-text query against the local archive built by
export --archive. Summaries and descriptions are searched; results are
ordered by relevance. FTS5 query syntax is supported (e.g. "login NEAR
timeout").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		hits, err := store.Find(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(hits) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for _, h := range hits {
			fmt.Fprintf(out, "%-12s  %-10s  %s\n", h.Key, h.Status, h.Summary)
		}
		fmt.Fprintf(out, "\n%d matches\n", len(hits))
		return nil
	},
}

func init() {
	findCmd.Flags().Int("limit", 0, "maximum number of matches (default from config)")

	rootCmd.AddCommand(findCmd)
}
