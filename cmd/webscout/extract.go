// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/webscout/internal/render"
	"github.com/pdiddy/webscout/internal/tavily"
)

var extractCmd = &cobra.Command{
	Use:   "extract [urls...]",
	Short: "Extract full page content from URLs",
	Long: `Extract fetches the full content of up to 20 URLs in one request.
Basic depth costs 1 credit per 5 successful extractions, advanced depth 2.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("depth", "basic", "extraction depth: basic or advanced")
	extractCmd.Flags().Bool("include-images", false, "include images from pages")
	extractCmd.Flags().Bool("json", false, "output raw JSON")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more URLs to extract")
	}

	depth, _ := cmd.Flags().GetString("depth")
	includeImages, _ := cmd.Flags().GetBool("include-images")

	req := tavily.ExtractRequest{
		URLs:          args,
		ExtractDepth:  depth,
		IncludeImages: includeImages,
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Extract(cmd.Context(), req)
	if err != nil {
		return err
	}

	recordRun(cmd, "extract", args[0], "ok", resp.Usage.Credits, resp.ResponseTime)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := render.JSON(resp)
		if err != nil {
			return err
		}
		return emit(out, "")
	}
	return emit(render.Extract(resp), "")
}
