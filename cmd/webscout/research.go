// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/internal/research"
	"github.com/pdiddy/webscout/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [input]",
	Short: "AI-synthesized research with citations",
	Long: `Research submits a long-running research task and polls its status
until it completes, fails, or the --max-wait deadline expires. Polling
starts at a 2 second interval and widens to 5 seconds after 30 seconds.

Use --output-schema with a JSON schema string to request structured
output, and --output-file to save the rendered report.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("model", "auto", "research model: mini, pro, or auto")
	researchCmd.Flags().String("citation-format", "numbered", "citation style: numbered, mla, apa, or chicago")
	researchCmd.Flags().String("output-schema", "", "JSON schema string for structured output")
	researchCmd.Flags().String("output-file", "", "save the rendered results to a file")
	researchCmd.Flags().Duration("poll-interval", 0, "initial poll interval (default 2s)")
	researchCmd.Flags().Duration("max-wait", 0, "maximum time to wait for completion (default 5m)")
	researchCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research topic or question")
	}

	model, _ := cmd.Flags().GetString("model")
	citationFormat, _ := cmd.Flags().GetString("citation-format")
	schemaStr, _ := cmd.Flags().GetString("output-schema")
	outputFile, _ := cmd.Flags().GetString("output-file")

	req := research.Request{
		Input:          args[0],
		Model:          model,
		Stream:         false,
		CitationFormat: citationFormat,
	}
	if schemaStr != "" {
		if !json.Valid([]byte(schemaStr)) {
			return fmt.Errorf("invalid JSON in --output-schema")
		}
		req.OutputSchema = json.RawMessage(schemaStr)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	runner := research.NewRunner(client, researchConfig(cmd))

	log.Info("researching", "input", req.Input, "model", req.Model)
	log.Info("this may take 30-120 seconds")

	result, err := runner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	recordRun(cmd, "research", req.Input, string(result.Outcome), 0, result.ResponseTime)

	var output string
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		output, err = render.JSON(result)
		if err != nil {
			return err
		}
	} else {
		output = render.Research(result)
	}

	if err := emit(output, outputFile); err != nil {
		return err
	}

	// Failed and timed-out runs still render, but exit non-zero.
	if result.Outcome != research.OutcomeDone {
		return fmt.Errorf("research %s", result.Outcome)
	}
	return nil
}

// researchConfig resolves polling settings: flag, then config file, then
// the package defaults.
func researchConfig(cmd *cobra.Command) types.ResearchConfig {
	cfg := types.ResearchConfig{
		PollInterval:    viper.GetDuration("research.poll_interval"),
		WidenedInterval: viper.GetDuration("research.widened_interval"),
		WidenAfter:      viper.GetDuration("research.widen_after"),
		MaxWait:         viper.GetDuration("research.max_wait"),
	}
	if v, _ := cmd.Flags().GetDuration("poll-interval"); v > 0 {
		cfg.PollInterval = v
	}
	if v, _ := cmd.Flags().GetDuration("max-wait"); v > 0 {
		cfg.MaxWait = v
	}
	return cfg
}
