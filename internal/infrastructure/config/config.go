// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for cana configuration.
	DefaultConfigDir = ".cana"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDataFile is the default database file name.
	DefaultDataFile = "cana.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM     LLMConfig     `yaml:"llm,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
}

// LLMConfig holds configuration for the LLM provider.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// StorageConfig holds configuration for the bible database.
type StorageConfig struct {
	// Path is the file path to the SQLite database. When empty the
	// database lives inside the .cana directory.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
	}
}

// Load loads configuration from the .cana directory in the given path.
// A missing config file is not an error: defaults (plus environment
// overrides) are returned so the CLI works out of the box.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigFilePath(basePath))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
	}
}

// ConfigDir returns the path to the .cana config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// DataPath returns the database path, honoring an explicit override.
func (c *Config) DataPath(basePath string) string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, DefaultDataFile)
}

// Exists checks if a cana config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
