package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentkit/pkg/llm"
)

func TestNewClient(t *testing.T) {
	client := New("test-api-key", "claude-sonnet-4-6")
	require.NotNil(t, client)
	assert.Equal(t, "claude-sonnet-4-6", client.ModelName())
}

func TestConvertMessagesSplitsSystem(t *testing.T) {
	system, turns, err := convertMessages([]llm.CompletionMessage{
		llm.NewSystemMessage("You are good at telling jokes."),
		llm.NewUserMessage("Tell me a joke about a pirate."),
	})
	require.NoError(t, err)
	require.Len(t, system, 1)
	assert.Equal(t, "You are good at telling jokes.", system[0].Text)
	assert.Len(t, turns, 1)
}

func TestConvertMessagesRejectsEmpty(t *testing.T) {
	_, _, err := convertMessages(nil)
	assert.Error(t, err)
}

func TestConvertTools(t *testing.T) {
	tools := convertTools([]llm.ToolDefinition{{
		Name:        "vector_search",
		Description: "Search documents",
		InputSchema: llm.ToolInputSchema{
			Properties: map[string]*llm.Property{
				"query": {Type: "string"},
			},
			Required: []string{"query"},
		},
	}})
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "vector_search", tools[0].OfTool.Name)
}

func TestStreamNotImplemented(t *testing.T) {
	client := New("test-api-key", "claude-sonnet-4-6")
	_, err := client.Stream(context.Background(), llm.NewCompletionRequest(nil))
	assert.Error(t, err)
}
