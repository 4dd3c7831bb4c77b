// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/webscout/internal/history"
	"github.com/pdiddy/webscout/internal/secrets"
	"github.com/pdiddy/webscout/internal/tavily"
	"github.com/pdiddy/webscout/pkg/types"
)

// newClient resolves the API credential and builds a Tavily client.
// A missing key fails here, before any network activity.
func newClient() (*tavily.Client, error) {
	key, err := secrets.APIKey(secrets.DefaultDir)
	if err != nil {
		return nil, err
	}
	return tavily.NewClient(key, types.HTTPConfig{
		ClientSource: viper.GetString("http.client_source"),
	}), nil
}

// emit writes output to stdout. When outputFile is non-empty the same
// content is also written verbatim to that path.
func emit(output, outputFile string) error {
	fmt.Println(output)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		log.Info("saved output", "path", outputFile)
	}
	return nil
}

// recordRun appends an invocation to the local history log. Recording is
// best-effort: failures are warnings, never fatal.
func recordRun(cmd *cobra.Command, command, input, outcome string, credits, responseTime float64) {
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		return
	}
	if !viper.GetBool("history.enabled") {
		return
	}

	store, err := history.NewStore(types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	err = store.Record(context.Background(), history.Entry{
		Command:      command,
		Input:        input,
		Outcome:      outcome,
		Credits:      credits,
		ResponseTime: responseTime,
	})
	if err != nil {
		log.Warn("could not record invocation", "error", err)
	}
}

// splitFlag parses a comma-separated flag value into a slice, or nil when
// the flag is empty.
func splitFlag(cmd *cobra.Command, name string) []string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
