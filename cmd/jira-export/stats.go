package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <project-key>",
	Short: "Show the issue count for a project",
	Long: `Stats reports how many issues a project holds without fetching any issue
data, so it is fast even for very large projects. Useful for deciding
whether to export a key range instead of the whole project.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectKey := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg.Jira)
		ctx := cmd.Context()

		project, err := client.Project(ctx, projectKey)
		if err != nil {
			return err
		}
		total, err := client.IssueCount(ctx, projectKey)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s): %d issues\n", project.Key, project.Name, total)
		if cfg.Export.LargeProjectThreshold > 0 && total > cfg.Export.LargeProjectThreshold {
			fmt.Fprintf(out, "Large project: consider exporting in key ranges with export --from/--to.\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
