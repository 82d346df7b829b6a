// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for curator configuration.
	DefaultConfigDir = ".curator"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultAuditFile is the default audit database file name.
	DefaultAuditFile = "audit.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Model   ModelConfig `yaml:"model,omitempty"`
	Raw     StoreConfig `yaml:"raw,omitempty"`
	Curated StoreConfig `yaml:"curated,omitempty"`
	Cache   CacheConfig `yaml:"cache,omitempty"`
	Log     LogConfig   `yaml:"log,omitempty"`
}

// ModelConfig holds configuration for the draft-generation provider.
type ModelConfig struct {
	// Provider selects the generation backend: "gemini" or "openai".
	Provider string `yaml:"provider,omitempty"`
	// Endpoint is the model or Vertex endpoint identifier, e.g.
	// "gemini-2.0-flash" or "projects/<p>/locations/<l>/endpoints/<id>".
	Endpoint string `yaml:"endpoint,omitempty"`
	// Project and Location route Gemini calls through Vertex AI when set.
	Project  string `yaml:"project,omitempty"`
	Location string `yaml:"location,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// StoreConfig identifies one object-store namespace.
type StoreConfig struct {
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
}

// CacheConfig controls the key-listing cache.
type CacheConfig struct {
	// TTLSeconds bounds listing staleness. Zero means the default (60s).
	TTLSeconds int `yaml:"ttl_seconds,omitempty"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Mode is "dev" (console) or "prod" (JSON). Defaults to dev.
	Mode string `yaml:"mode,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Provider: "gemini",
			Location: "us-central1",
		},
		Raw:     StoreConfig{Prefix: "raw_submissions"},
		Curated: StoreConfig{Prefix: "curated"},
		Cache:   CacheConfig{TTLSeconds: 60},
		Log:     LogConfig{Mode: "dev"},
	}
}

// Load loads configuration from the .curator directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'curator init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDerivedDefaults()
	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyDerivedDefaults fills values that depend on other settings: a missing
// curated bucket falls back to the raw bucket, matching a single-bucket
// deployment.
func (c *Config) applyDerivedDefaults() {
	if c.Curated.Bucket == "" {
		c.Curated.Bucket = c.Raw.Bucket
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if c.Model.APIKey != "" {
		return
	}
	switch c.Model.Provider {
	case "openai":
		c.Model.APIKey = os.Getenv("OPENAI_API_KEY")
	default:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.Model.APIKey = key
		} else {
			c.Model.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
}

// ValidateForGeneration checks the settings the generate command needs.
func (c *Config) ValidateForGeneration() error {
	if c.Model.Endpoint == "" {
		return errors.New("model.endpoint is required (set it in .curator/config.yaml)")
	}
	return nil
}

// ValidateForReview checks the settings the list/approve commands need.
func (c *Config) ValidateForReview() error {
	if c.Raw.Bucket == "" {
		return errors.New("raw.bucket is required (set it in .curator/config.yaml)")
	}
	return nil
}

// ValidateForExport checks the settings the export command needs.
func (c *Config) ValidateForExport() error {
	if c.Curated.Bucket == "" {
		return errors.New("curated.bucket is required (set it in .curator/config.yaml)")
	}
	return nil
}

// ConfigDir returns the path to the .curator config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// AuditPath returns the path to the local audit database.
func AuditPath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultAuditFile)
}

// Exists checks if a curator config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
