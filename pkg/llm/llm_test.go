package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionRequest(t *testing.T) {
	req := NewCompletionRequest([]CompletionMessage{NewUserMessage("Hello")})
	assert.Len(t, req.Messages, 1)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	assert.Zero(t, req.Temperature)
}

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, RoleSystem, NewSystemMessage("s").Role)
	assert.Equal(t, RoleUser, NewUserMessage("u").Role)
	assert.Equal(t, RoleAssistant, NewAssistantMessage("a").Role)
}

func TestMockClientReplaysResponses(t *testing.T) {
	mock := NewMockClient([]CompletionResponse{
		{Content: "first"},
		{Content: "second"},
	}, nil)

	resp, err := mock.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	resp, err = mock.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Content)

	_, err = mock.Complete(context.Background(), NewCompletionRequest(nil))
	assert.Error(t, err, "exhausted mock should fail")
}

func TestMockClientReplaysErrors(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockClient(nil, []error{boom})

	_, err := mock.Complete(context.Background(), NewCompletionRequest(nil))
	assert.ErrorIs(t, err, boom)
}

func TestMockClientRecordsRequests(t *testing.T) {
	mock := NewMockClient([]CompletionResponse{{Content: "ok"}}, nil)

	req := NewCompletionRequest([]CompletionMessage{NewUserMessage("ping")})
	_, err := mock.Complete(context.Background(), req)
	require.NoError(t, err)

	got := mock.Requests()
	require.Len(t, got, 1)
	assert.Equal(t, "ping", got[0].Messages[0].Content)
}

func TestMockClientStream(t *testing.T) {
	mock := NewMockClient([]CompletionResponse{{Content: "streamed"}}, nil)

	ch, err := mock.Stream(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)

	var content string
	for chunk := range ch {
		require.NoError(t, chunk.Error)
		content += chunk.Content
	}
	assert.Equal(t, "streamed", content)
}
