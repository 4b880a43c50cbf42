package ollama

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentkit/pkg/llm"
)

func TestNewClient(t *testing.T) {
	client := New("http://localhost:11434", "llama3")
	require.NotNil(t, client)
	assert.Equal(t, "llama3", client.ModelName())
}

func TestNewClientBadURLFallsBack(t *testing.T) {
	client := New("://not-a-url", "llama3")
	require.NotNil(t, client)
}

func TestConvertMessages(t *testing.T) {
	msgs, err := convertMessages([]llm.CompletionMessage{
		llm.NewSystemMessage("be brief"),
		llm.NewUserMessage("hi"),
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "user", msgs[1].Role)
}

func TestConvertMessagesRejectsEmpty(t *testing.T) {
	_, err := convertMessages(nil)
	assert.Error(t, err)
}

func TestStreamNotImplemented(t *testing.T) {
	client := New("http://localhost:11434", "llama3")
	_, err := client.Stream(context.Background(), llm.NewCompletionRequest(nil))
	assert.Error(t, err)
}
