package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, ProviderOpenAI, cfg.Provider)
	require.Equal(t, "credentials.json", cfg.CredentialsPath)
	require.Equal(t, "token.json", cfg.TokenPath)
	require.Equal(t, "primary", cfg.CalendarID)
	require.Equal(t, "~/.meetflow/sessions", cfg.SessionDir)
	require.Equal(t, int64(50), cfg.MaxThreads)
	require.Equal(t, 2, cfg.NotifyDelaySeconds)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(`
provider: googleai
model: gemini-2.0-flash
calendar_id: work@example.com
max_threads: 10
log_level: debug
`))
	require.NoError(t, err)
	require.Equal(t, ProviderGoogleAI, cfg.Provider)
	require.Equal(t, "gemini-2.0-flash", cfg.Model)
	require.Equal(t, "work@example.com", cfg.CalendarID)
	require.Equal(t, int64(10), cfg.MaxThreads)
	require.Equal(t, "debug", cfg.LogLevel)

	// Unset fields take defaults
	require.Equal(t, "credentials.json", cfg.CredentialsPath)
	require.Equal(t, 2, cfg.NotifyDelaySeconds)
}

func TestParseYAMLStrict(t *testing.T) {
	_, err := ParseYAML([]byte("no_such_field: true\n"))
	require.Error(t, err)
}

func TestParseYAMLInvalidProvider(t *testing.T) {
	_, err := ParseYAML([]byte("provider: anthropic\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown provider")
}

func TestParseJSON(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"provider": "openai", "model": "gpt-4o", "notify_delay_seconds": 5}`))
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, cfg.Provider)
	require.Equal(t, "gpt-4o", cfg.Model)
	require.Equal(t, 5, cfg.NotifyDelaySeconds)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "meetflow.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("provider: googleai\n"), 0644))
	cfg, err := ParseFile(yamlPath)
	require.NoError(t, err)
	require.Equal(t, ProviderGoogleAI, cfg.Provider)

	txtPath := filepath.Join(dir, "meetflow.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("provider: openai\n"), 0644))
	_, err = ParseFile(txtPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file extension")

	_, err = ParseFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
