package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentkit/pkg/config"
	"agentkit/pkg/logx"
)

func setAzureEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAzureEndpoint, "https://example.openai.azure.com")
	t.Setenv(config.EnvAzureChatDeployment, "gpt-4o")
	t.Setenv(config.EnvAzureAPIVersion, "2024-12-01-preview")
	t.Setenv(config.EnvAzureAPIKey, "test-key")
}

func TestAskRejectsPromptOverTokenBudget(t *testing.T) {
	setAzureEnv(t)

	prompt := strings.Repeat("pirate treasure map ", 50)
	err := runAsk([]string{"-token-budget", "1", prompt})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestAskRequiresPrompt(t *testing.T) {
	err := runAsk(nil)
	assert.Error(t, err)
}

func TestAskRejectsUnknownProvider(t *testing.T) {
	err := runAsk([]string{"-provider", "bogus", "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestAskDebugFlagEnablesDebugLogging(t *testing.T) {
	defer logx.SetDebug(false)

	err := runAsk([]string{"-debug", "-provider", "bogus", "hi"})
	require.Error(t, err)
	assert.True(t, logx.IsDebugEnabled())
}
