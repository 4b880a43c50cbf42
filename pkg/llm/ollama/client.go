// Package ollama implements llm.Client against a local Ollama server,
// allowing the toolkit to run against open-source models without any cloud
// credential.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"agentkit/pkg/llm"
)

// Client wraps the Ollama API client to implement the llm.Client interface.
type Client struct {
	client *api.Client
	model  string
}

// New creates a client for the Ollama server at hostURL
// (e.g. "http://localhost:11434").
func New(hostURL, model string) *Client {
	parsed, err := url.Parse(hostURL)
	if err != nil {
		// Fall back to the conventional local server.
		parsed, _ = url.Parse("http://localhost:11434")
	}

	return &Client{
		client: api.NewClient(parsed, http.DefaultClient),
		model:  model,
	}
}

// Complete implements the llm.Client interface.
func (c *Client) Complete(ctx context.Context, in llm.CompletionRequest) (llm.CompletionResponse, error) {
	messages, err := convertMessages(in.Messages)
	if err != nil {
		return llm.CompletionResponse{}, err
	}

	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	stream := false // single response in Complete
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": in.Temperature,
			"num_predict": maxTokens,
		},
	}

	var response api.ChatResponse
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("ollama chat request failed: %w", err)
	}

	return llm.CompletionResponse{
		Content: response.Message.Content,
		Usage: llm.Usage{
			PromptTokens:     response.Metrics.PromptEvalCount,
			CompletionTokens: response.Metrics.EvalCount,
		},
	}, nil
}

// Stream implements the llm.Client interface. The Ollama provider is used
// for synchronous completions only.
func (c *Client) Stream(_ context.Context, _ llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	return nil, fmt.Errorf("streaming not implemented for ollama client")
}

// ModelName returns the model this client targets.
func (c *Client) ModelName() string {
	return c.model
}

// convertMessages maps neutral messages onto Ollama's message format.
func convertMessages(messages []llm.CompletionMessage) ([]api.Message, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("message list cannot be empty")
	}

	out := make([]api.Message, 0, len(messages))
	for i := range messages {
		msg := &messages[i]
		out = append(out, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return out, nil
}
