// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the jira-export CLI: it exports Jira
// Cloud projects to Markdown documents, with optional local archiving.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jira-export/internal/httputil"
	"github.com/pdiddy/jira-export/internal/jira"
	"github.com/pdiddy/jira-export/internal/secrets"
	"github.com/pdiddy/jira-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the jira-export CLI.
var rootCmd = &cobra.Command{
	Use:   "jira-export",
	Short: "Export Jira Cloud projects to Markdown",
	Long: `jira-export retrieves all issues of a Jira Cloud project through the REST
API, converts each description from Atlassian Document Format to Markdown,
and assembles them into a single portable document suitable for version
control and offline reading.

Credentials come from configuration, JIRA_EXPORT_* environment variables, or
plain-text files in .secrets/ (jira-domain, jira-email, jira-api-token).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./jira-export.yaml or ~/.config/jira-export/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jira-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jira-export"))
		}
	}

	viper.SetDefault("jira.timeout", 30*time.Second)
	viper.SetDefault("jira.user_agent", "jira-export/"+version)
	viper.SetDefault("export.output_dir", "exports")
	viper.SetDefault("export.large_project_threshold", 500)
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("archive.max_results", 20)

	viper.SetEnvPrefix("JIRA_EXPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// secretDefault returns value if set, falling back to the named .secrets/ file.
func secretDefault(value, key string) string {
	if value != "" {
		return value
	}
	return loadedSecrets[key]
}

// loadConfig assembles the full configuration from viper and .secrets/.
// Missing credentials are a configuration error, reported before any
// network call is made.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Jira: types.JiraConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("jira.timeout"),
				UserAgent: viper.GetString("jira.user_agent"),
			},
			Domain:     secretDefault(viper.GetString("jira.domain"), "jira-domain"),
			Email:      secretDefault(viper.GetString("jira.email"), "jira-email"),
			APIToken:   secretDefault(viper.GetString("jira.api_token"), "jira-api-token"),
			MaxRetries: viper.GetInt("jira.max_retries"),
			PageSize:   viper.GetInt("jira.page_size"),
			MaxPages:   viper.GetInt("jira.max_pages"),
		},
		Export: types.ExportConfig{
			OutputDir:             viper.GetString("export.output_dir"),
			LargeProjectThreshold: viper.GetInt("export.large_project_threshold"),
		},
		Archive: types.ArchiveConfig{
			Dir:        viper.GetString("archive.dir"),
			MaxResults: viper.GetInt("archive.max_results"),
		},
	}

	var missing []string
	if cfg.Jira.Domain == "" {
		missing = append(missing, "jira.domain")
	}
	if cfg.Jira.Email == "" {
		missing = append(missing, "jira.email")
	}
	if cfg.Jira.APIToken == "" {
		missing = append(missing, "jira.api_token")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf(
			"missing required configuration: %v (set in jira-export.yaml, JIRA_EXPORT_* environment, or .secrets/)",
			missing)
	}

	return cfg, nil
}

// newClient builds the Jira client with the retry transport installed.
// Backoff on rate limiting happens here, outside the retrieval loop.
func newClient(cfg types.JiraConfig) *jira.Client {
	doer := &httputil.RetryDoer{
		Client:     &http.Client{Timeout: cfg.Timeout},
		MaxRetries: cfg.MaxRetries,
	}
	return jira.NewClient(cfg, doer)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
