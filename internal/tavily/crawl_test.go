// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tavily

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlRequestValidate(t *testing.T) {
	valid := CrawlRequest{
		URL: "https://docs.example.com", MaxDepth: 1, MaxBreadth: 20,
		Limit: 50, ExtractDepth: "basic", Format: "markdown", Timeout: 150,
	}

	tests := []struct {
		name   string
		mutate func(*CrawlRequest)
		errMsg string
	}{
		{"valid", func(r *CrawlRequest) {}, ""},
		{"missing url", func(r *CrawlRequest) { r.URL = "" }, "root URL"},
		{"depth too deep", func(r *CrawlRequest) { r.MaxDepth = 6 }, "between 1 and 5"},
		{"depth zero", func(r *CrawlRequest) { r.MaxDepth = 0 }, "between 1 and 5"},
		{"bad extract depth", func(r *CrawlRequest) { r.ExtractDepth = "deep" }, "invalid extract depth"},
		{"bad format", func(r *CrawlRequest) { r.Format = "html" }, "invalid format"},
		{"chunks without instructions", func(r *CrawlRequest) { r.ChunksPerSource = 3 }, "requires instructions"},
		{
			"chunks with instructions",
			func(r *CrawlRequest) { r.ChunksPerSource = 3; r.Instructions = "find API docs" },
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestSitemapRequestValidate(t *testing.T) {
	err := SitemapRequest{MaxDepth: 1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root URL")

	err = SitemapRequest{URL: "https://a.example", MaxDepth: 9}.Validate()
	require.Error(t, err)

	assert.NoError(t, SitemapRequest{URL: "https://a.example", MaxDepth: 2}.Validate())
}

func TestExtractRequestValidate(t *testing.T) {
	urls := make([]string, MaxExtractURLs+1)
	for i := range urls {
		urls[i] = "https://example.com"
	}

	err := ExtractRequest{URLs: urls, ExtractDepth: "basic"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 20 URLs")

	err = ExtractRequest{ExtractDepth: "basic"}.Validate()
	require.Error(t, err)

	assert.NoError(t, ExtractRequest{URLs: urls[:20], ExtractDepth: "basic"}.Validate())
}

func TestPageFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://docs.example.com/api/v1?page=2", "docs.example.com_api_v1_page_2.md"},
		{"http://example.com/", "example.com_.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageFilename(tt.url))
	}

	// Long URLs are capped at 100 characters before the extension.
	name := PageFilename("https://example.com/" + strings.Repeat("a", 200))
	assert.Len(t, name, 103) // 100 chars + ".md"
}

func TestSavePages(t *testing.T) {
	dir := t.TempDir()
	pages := []CrawlPage{
		{URL: "https://a.example/one", RawContent: "content one"},
		{URL: "https://a.example/empty", RawContent: ""},
		{URL: "https://a.example/two", RawContent: "content two"},
	}

	saved, err := SavePages(pages, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, saved, 2, "pages without content are skipped")

	data, err := os.ReadFile(saved[0])
	require.NoError(t, err)
	assert.Equal(t, "# https://a.example/one\n\ncontent one", string(data))
}
