package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAzureEndpoint, "https://example.openai.azure.com")
	t.Setenv(EnvAzureChatDeployment, "gpt-4o")
	t.Setenv(EnvAzureAPIVersion, "2024-12-01-preview")
	t.Setenv(EnvAzureAPIKey, "")

	cfg := FromEnv()

	assert.Equal(t, "https://example.openai.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "gpt-4o", cfg.Azure.ChatDeployment)
	assert.Equal(t, "2024-12-01-preview", cfg.Azure.APIVersion)
	assert.Empty(t, cfg.Azure.APIKey)
}

func TestFromEnvNeverFails(t *testing.T) {
	// Absent variables are deferred to the downstream client, not rejected.
	t.Setenv(EnvAzureEndpoint, "")
	t.Setenv(EnvAzureChatDeployment, "")

	cfg := FromEnv()
	assert.Empty(t, cfg.Azure.Endpoint)
	assert.Empty(t, cfg.Azure.ChatDeployment)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvOllamaHost, "")
	t.Setenv(EnvOllamaModel, "")
	t.Setenv(EnvAnthropicModel, "")

	cfg := FromEnv()
	assert.Equal(t, DefaultOllamaHost, cfg.Ollama.Host)
	assert.Equal(t, DefaultOllamaModel, cfg.Ollama.Model)
	assert.Equal(t, DefaultAnthropicModel, cfg.Anthropic.Model)
}

func TestLoadFileWithEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agentkit.yaml")
	content := `
azure:
  endpoint: https://file.openai.azure.com
  chat_deployment: file-deployment
  api_version: 2024-06-01
transcript_db: /tmp/runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Env wins over file.
	t.Setenv(EnvAzureChatDeployment, "env-deployment")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://file.openai.azure.com", cfg.Azure.Endpoint)
	assert.Equal(t, "env-deployment", cfg.Azure.ChatDeployment)
	assert.Equal(t, "2024-06-01", cfg.Azure.APIVersion)
	assert.Equal(t, "/tmp/runs.db", cfg.TranscriptDB)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvAzureEndpoint, "https://env-only.openai.azure.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env-only.openai.azure.com", cfg.Azure.Endpoint)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("azure: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
