// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jira-export/internal/archive"
	"github.com/pdiddy/jira-export/internal/export"
	"github.com/pdiddy/jira-export/internal/jira"
)

var exportCmd = &cobra.Command{
	Use:   "export <project-key>",
	Short: "Export a project's issues to a Markdown document",
	Long: `Export fetches every issue of a project (or a numeric key range within it),
converts descriptions to Markdown, and writes a single document plus a YAML
manifest to the output directory. With --archive the issues are also indexed
into the local archive for offline full-text search.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectKey := args[0]
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		toArchive, _ := cmd.Flags().GetBool("archive")

		hasRange := cmd.Flags().Changed("from") || cmd.Flags().Changed("to")
		if hasRange && (!cmd.Flags().Changed("from") || !cmd.Flags().Changed("to")) {
			return fmt.Errorf("--from and --to must be used together")
		}
		if hasRange && from > to {
			return fmt.Errorf("--from (%d) must not exceed --to (%d)", from, to)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.Export.OutputDir = outputDir
		}

		ctx := cmd.Context()
		errW := cmd.ErrOrStderr()
		client := newClient(cfg.Jira)

		// Project lookup first: a missing or archived project refuses the
		// export before any issue is fetched.
		project, err := client.Project(ctx, projectKey)
		if err != nil {
			return err
		}

		scope := jira.ProjectScope(projectKey)
		if hasRange {
			scope = jira.RangeScope(projectKey, from, to)
		} else if cfg.Export.LargeProjectThreshold > 0 {
			if total, countErr := client.IssueCount(ctx, projectKey); countErr != nil {
				fmt.Fprintf(errW, "warning: could not count issues: %v\n", countErr)
			} else if total > cfg.Export.LargeProjectThreshold {
				fmt.Fprintf(errW, "warning: %s has %d issues; consider exporting a key range with --from/--to\n",
					projectKey, total)
			}
		}

		fmt.Fprintf(errW, "exporting %s (%s)\n", projectKey, project.Name)

		issues, err := client.FetchAll(ctx, scope, errW)
		if err != nil {
			return err
		}

		content := export.Generate(project.Name, issues, time.Now())
		name := export.Filename(projectKey, from, to, hasRange)

		path, err := export.WriteDocument(cfg.Export.OutputDir, name, content)
		if err != nil {
			return err
		}

		manifest := export.Manifest{
			ProjectKey:  projectKey,
			ProjectName: project.Name,
			IssueCount:  len(issues),
			Document:    name,
			GeneratedAt: time.Now().UTC(),
		}
		if hasRange {
			manifest.KeyFrom = from
			manifest.KeyTo = to
		}
		if _, err := export.WriteManifest(cfg.Export.OutputDir, manifest); err != nil {
			fmt.Fprintf(errW, "warning: manifest write failed: %v\n", err)
		}

		if toArchive {
			store, err := archive.Open(cfg.Archive)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := store.Ingest(ctx, projectKey, issues)
			if err != nil {
				return fmt.Errorf("archiving issues: %w", err)
			}
			fmt.Fprintf(errW, "archived %d issues (%d new, %d updated)\n",
				summary.Total(), summary.Added, summary.Updated)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d issues to %s\n", len(issues), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().Int("from", 0, "first issue number to include (e.g. 1 for PROJ-1)")
	exportCmd.Flags().Int("to", 0, "last issue number to include, inclusive")
	exportCmd.Flags().String("output-dir", "", "directory for the export document (overrides config)")
	exportCmd.Flags().Bool("archive", false, "also index the exported issues into the local archive")

	rootCmd.AddCommand(exportCmd)
}
