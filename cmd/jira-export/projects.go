package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List accessible Jira projects",
	Long: `Projects lists every live project the configured account can see, paging
through the project endpoint until the service reports the last page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg.Jira)
		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(projects)
		}

		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects found.")
			return nil
		}
		for _, p := range projects {
			fmt.Fprintf(out, "%-12s  %s\n", p.Key, p.Name)
		}
		fmt.Fprintf(out, "\n%d projects\n", len(projects))
		return nil
	},
}

func init() {
	projectsCmd.Flags().Bool("json", false, "output projects as JSON")

	rootCmd.AddCommand(projectsCmd)
}
