// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the webscout CLI, a thin wrapper
// around the Tavily web-research API: search, extract, sitemap, crawl,
// and AI-synthesized research.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the webscout CLI.
var rootCmd = &cobra.Command{
	Use:   "webscout",
	Short: "Web research from the command line via the Tavily API",
	Long: `webscout wraps the Tavily web-research API. Each operation is a
subcommand: search, extract, sitemap, crawl, deep-search, and research.

Synchronous operations make a single API call. The research subcommand
submits a long-running task and polls it until completion, failure, or a
deadline. Every subcommand supports --json for raw API output.

The API key is read from the TAVILY_API_KEY environment variable, or from
.secrets/tavily-api-key as a fallback.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./webscout.yaml or ~/.config/webscout/config.yaml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not record this invocation in the local history log")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("webscout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "webscout"))
		}
	}

	viper.SetEnvPrefix("WEBSCOUT")
	viper.AutomaticEnv()

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dir", ".webscout")
	viper.SetDefault("history.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
