// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the Tavily API credential. The environment
// variable takes precedence; a directory of plain-text key files (one
// secret per file, filename is the key name) serves as a fallback.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/webscout/internal/tavily"
)

const (
	// EnvVar is the environment variable holding the Tavily API key.
	EnvVar = "TAVILY_API_KEY"

	// KeyFile is the filename of the API key inside the secrets directory.
	KeyFile = "tavily-api-key"

	// DefaultDir is the default secrets directory.
	DefaultDir = ".secrets"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// APIKey resolves the Tavily API key: the environment variable first,
// then the key file under dir. An empty result is a configuration error
// reported before any network activity.
func APIKey(dir string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvVar)); key != "" {
		return key, nil
	}

	loaded, err := Load(dir)
	if err != nil {
		return "", err
	}
	if key := loaded[KeyFile]; key != "" {
		return key, nil
	}

	return "", &tavily.ConfigError{
		Msg: fmt.Sprintf("%s environment variable not set (get a free key at https://app.tavily.com)", EnvVar),
	}
}
