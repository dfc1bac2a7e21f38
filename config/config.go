// Package config loads application configuration and builds the engine
// and its collaborators from it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Model provider names.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// Config is the application configuration.
type Config struct {
	// Provider selects the language-model backend: "openai" or "googleai".
	Provider string `yaml:"provider" json:"provider"`

	// Model is the model name. Empty uses the provider's default.
	Model string `yaml:"model" json:"model"`

	// OpenAIAPIKey overrides the OPENAI_API_KEY environment variable.
	OpenAIAPIKey string `yaml:"openai_api_key" json:"openai_api_key"`

	// GeminiAPIKey overrides the GEMINI_API_KEY environment variable.
	GeminiAPIKey string `yaml:"gemini_api_key" json:"gemini_api_key"`

	// CredentialsPath points at the OAuth client credentials file.
	CredentialsPath string `yaml:"credentials_path" json:"credentials_path"`

	// TokenPath is where the OAuth token is cached.
	TokenPath string `yaml:"token_path" json:"token_path"`

	// CalendarID is the target calendar.
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`

	// SessionDir is where session checkpoints are stored.
	SessionDir string `yaml:"session_dir" json:"session_dir"`

	// MaxThreads caps how many inbox threads are scanned per run.
	MaxThreads int64 `yaml:"max_threads" json:"max_threads"`

	// NotifyDelaySeconds is the pause between meetings_scheduled events.
	NotifyDelaySeconds int `yaml:"notify_delay_seconds" json:"notify_delay_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = "credentials.json"
	}
	if c.TokenPath == "" {
		c.TokenPath = "token.json"
	}
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.SessionDir == "" {
		c.SessionDir = "~/.meetflow/sessions"
	}
	if c.MaxThreads <= 0 {
		c.MaxThreads = 50
	}
	if c.NotifyDelaySeconds <= 0 {
		c.NotifyDelaySeconds = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGoogleAI:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}

// ParseFile loads a Config from a file. The file extension determines the
// format (JSON or YAML). Defaults are applied to unset fields.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return ParseJSON(data)
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ParseYAML loads a Config from YAML.
func ParseYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, err
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParseJSON loads a Config from JSON.
func ParseJSON(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
