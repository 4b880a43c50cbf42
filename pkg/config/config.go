// Package config resolves agentkit configuration from the process
// environment, optionally overlaid on a YAML file.
//
// Resolution order is file first, environment second: any environment
// variable that is set wins over the file value. Absent values are not
// validated here; each command checks the settings it requires.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by FromEnv.
const (
	EnvAzureEndpoint             = "AZURE_OPENAI_ENDPOINT"
	EnvAzureChatDeployment       = "AZURE_OPENAI_CHAT_DEPLOYMENT_NAME"
	EnvAzureEmbeddingsDeployment = "AZURE_OPENAI_EMBEDDINGS_DEPLOYMENT_NAME"
	EnvAzureAPIVersion           = "AZURE_OPENAI_API_VERSION"
	EnvAzureAPIKey               = "AZURE_OPENAI_API_KEY"
	EnvAnthropicAPIKey           = "ANTHROPIC_API_KEY"
	EnvAnthropicModel            = "ANTHROPIC_MODEL"
	EnvOllamaHost                = "OLLAMA_HOST"
	EnvOllamaModel               = "OLLAMA_MODEL"
	EnvTranscriptDB              = "AGENTKIT_TRANSCRIPT_DB"
	EnvMetricsAddr               = "AGENTKIT_METRICS_ADDR"
)

// Defaults for optional settings.
const (
	DefaultOllamaHost     = "http://localhost:11434"
	DefaultOllamaModel    = "llama3"
	DefaultAnthropicModel = "claude-sonnet-4-6"
)

// Azure holds the connection tuple for an Azure OpenAI resource.
// APIKey may be empty; the credential resolver falls back to the ambient
// Azure credential chain in that case.
type Azure struct {
	Endpoint             string `yaml:"endpoint"`
	ChatDeployment       string `yaml:"chat_deployment"`
	EmbeddingsDeployment string `yaml:"embeddings_deployment"`
	APIVersion           string `yaml:"api_version"`
	APIKey               string `yaml:"api_key"`
}

// Anthropic holds settings for the Anthropic provider.
type Anthropic struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Ollama holds settings for the local Ollama provider.
type Ollama struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// Config is the full agentkit configuration.
type Config struct {
	Azure        Azure     `yaml:"azure"`
	Anthropic    Anthropic `yaml:"anthropic"`
	Ollama       Ollama    `yaml:"ollama"`
	TranscriptDB string    `yaml:"transcript_db"`
	MetricsAddr  string    `yaml:"metrics_addr"`
}

// FromEnv builds a Config from the process environment alone.
// It never fails: absent variables yield empty fields (or defaults for the
// optional Ollama/Anthropic settings).
func FromEnv() Config {
	cfg := Config{}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg
}

// Load reads a YAML config file and overlays the environment on top of it.
// A missing file is not an error — the result is then identical to FromEnv.
func Load(path string) (Config, error) {
	cfg := Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env-only resolution.
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// applyEnv overlays every set environment variable onto cfg.
func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Azure.Endpoint, EnvAzureEndpoint)
	setIfPresent(&cfg.Azure.ChatDeployment, EnvAzureChatDeployment)
	setIfPresent(&cfg.Azure.EmbeddingsDeployment, EnvAzureEmbeddingsDeployment)
	setIfPresent(&cfg.Azure.APIVersion, EnvAzureAPIVersion)
	setIfPresent(&cfg.Azure.APIKey, EnvAzureAPIKey)
	setIfPresent(&cfg.Anthropic.APIKey, EnvAnthropicAPIKey)
	setIfPresent(&cfg.Anthropic.Model, EnvAnthropicModel)
	setIfPresent(&cfg.Ollama.Host, EnvOllamaHost)
	setIfPresent(&cfg.Ollama.Model, EnvOllamaModel)
	setIfPresent(&cfg.TranscriptDB, EnvTranscriptDB)
	setIfPresent(&cfg.MetricsAddr, EnvMetricsAddr)
}

// applyDefaults fills optional settings that have sensible local defaults.
func applyDefaults(cfg *Config) {
	if cfg.Ollama.Host == "" {
		cfg.Ollama.Host = DefaultOllamaHost
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = DefaultOllamaModel
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = DefaultAnthropicModel
	}
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
