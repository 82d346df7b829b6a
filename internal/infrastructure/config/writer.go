package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Feedback-Curator Configuration

model:
  provider: gemini
  # endpoint: projects/<project>/locations/<location>/endpoints/<id>
  # project: my-gcp-project
  location: us-central1
  # api_key: your-api-key (or set GEMINI_API_KEY / OPENAI_API_KEY env var)

raw:
  # bucket: feedback-raw
  prefix: raw_submissions

curated:
  # bucket: defaults to raw.bucket when unset
  prefix: curated

cache:
  ttl_seconds: 60

log:
  mode: dev
`

// WriteDefault creates the .curator directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
