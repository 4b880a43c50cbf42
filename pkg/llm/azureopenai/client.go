// Package azureopenai implements llm.Client against an Azure OpenAI
// resource using the official OpenAI Go package and its azure subpackage.
// Requests are routed to a named deployment; authentication is either an
// API key or an azcore token credential (see pkg/credential).
package azureopenai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"agentkit/pkg/credential"
	"agentkit/pkg/llm"
)

// Client wraps the official OpenAI Go client bound to an Azure endpoint,
// deployment and API version.
type Client struct {
	client               openai.Client
	deployment           string
	embeddingsDeployment string
}

// Config carries the Azure OpenAI connection tuple. No field is validated
// here: callers check their required settings before constructing a client.
type Config struct {
	Endpoint             string
	Deployment           string
	EmbeddingsDeployment string
	APIVersion           string
}

// New creates a client for the given connection tuple and credential.
func New(cfg Config, cred credential.Credential) *Client {
	opts := []option.RequestOption{
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
	}
	if cred.UsesKey() {
		opts = append(opts, azure.WithAPIKey(cred.APIKey))
	} else {
		opts = append(opts, option.WithMiddleware(bearerAuth(cred)))
	}

	return &Client{
		client:               openai.NewClient(opts...),
		deployment:           cfg.Deployment,
		embeddingsDeployment: cfg.EmbeddingsDeployment,
	}
}

// bearerAuth authorizes each request with a token acquired through the
// credential, so every token is requested for the Azure AI resource scope.
// The azidentity credential chain caches tokens internally.
func bearerAuth(cred credential.Credential) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		token, err := cred.Token(req.Context())
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return next(req)
	}
}

// Complete implements the llm.Client interface via the chat completions API.
func (c *Client) Complete(ctx context.Context, in llm.CompletionRequest) (llm.CompletionResponse, error) {
	params, err := c.buildParams(in)
	if err != nil {
		return llm.CompletionResponse{}, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("azure openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.CompletionResponse{}, fmt.Errorf("empty response from azure openai")
	}

	choice := resp.Choices[0]
	out := llm.CompletionResponse{
		Content: choice.Message.Content,
		Usage: llm.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
		},
	}

	for i := range choice.Message.ToolCalls {
		tc := &choice.Message.ToolCalls[i]
		var parameters map[string]any
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &parameters); err != nil {
				return llm.CompletionResponse{}, fmt.Errorf("failed to parse tool arguments for %s: %w", tc.Function.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:         tc.ID,
			Name:       tc.Function.Name,
			Parameters: parameters,
		})
	}

	return out, nil
}

// Stream implements the llm.Client interface using the SSE chat stream.
func (c *Client) Stream(ctx context.Context, in llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	params, err := c.buildParams(in)
	if err != nil {
		return nil, err
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	ch := make(chan llm.StreamChunk)

	go func() {
		defer close(ch)
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				ch <- llm.StreamChunk{Content: delta}
			}
		}
		if err := stream.Err(); err != nil {
			ch <- llm.StreamChunk{Error: fmt.Errorf("azure openai stream failed: %w", err)}
			return
		}
		ch <- llm.StreamChunk{Done: true}
	}()

	return ch, nil
}

// GenerateEmbedding implements llm.Embedder against the embeddings deployment.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if c.embeddingsDeployment == "" {
		return nil, fmt.Errorf("no embeddings deployment configured")
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embeddingsDeployment),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		return nil, fmt.Errorf("azure openai embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from azure openai")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

// ModelName returns the chat deployment this client targets.
func (c *Client) ModelName() string {
	return c.deployment
}

// buildParams converts a neutral completion request to chat API params.
func (c *Client) buildParams(in llm.CompletionRequest) (openai.ChatCompletionNewParams, error) {
	messages, err := convertMessages(in.Messages)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}

	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.deployment),
		Messages:  messages,
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if in.Temperature > 0 {
		params.Temperature = openai.Float(float64(in.Temperature))
	}
	if len(in.Tools) > 0 {
		params.Tools = convertTools(in.Tools)
	}
	return params, nil
}

// convertMessages maps neutral messages onto the chat message param union.
func convertMessages(messages []llm.CompletionMessage) ([]openai.ChatCompletionMessageParamUnion, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("message list cannot be empty")
	}

	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i := range messages {
		msg := &messages[i]
		switch msg.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case llm.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case llm.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			return nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}
	return out, nil
}

// convertTools maps neutral tool definitions onto function tool params.
func convertTools(defs []llm.ToolDefinition) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, len(defs))
	for i := range defs {
		def := &defs[i]

		properties := make(map[string]any, len(def.InputSchema.Properties))
		for name, prop := range def.InputSchema.Properties {
			if prop != nil {
				properties[name] = propertyToSchema(prop)
			}
		}

		out[i] = openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        def.Name,
				Description: openai.String(def.Description),
				Parameters: openai.FunctionParameters(map[string]any{
					"type":       "object",
					"properties": properties,
					"required":   def.InputSchema.Required,
				}),
			},
		}
	}
	return out
}

// propertyToSchema recursively converts a Property to JSON schema form.
func propertyToSchema(prop *llm.Property) map[string]any {
	schema := map[string]any{
		"type": prop.Type,
	}
	if prop.Description != "" {
		schema["description"] = prop.Description
	}
	if len(prop.Enum) > 0 {
		schema["enum"] = prop.Enum
	}
	if prop.Type == "array" && prop.Items != nil {
		schema["items"] = propertyToSchema(prop.Items)
	}
	if prop.Type == "object" && prop.Properties != nil {
		properties := make(map[string]any, len(prop.Properties))
		for name, child := range prop.Properties {
			if child != nil {
				properties[name] = propertyToSchema(child)
			}
		}
		schema["properties"] = properties
	}
	return schema
}
