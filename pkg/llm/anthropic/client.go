// Package anthropic implements llm.Client on the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"agentkit/pkg/llm"
)

// Client wraps the Anthropic API client to implement the llm.Client interface.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates an Anthropic client for the given API key and model.
func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Complete implements the llm.Client interface.
func (c *Client) Complete(ctx context.Context, in llm.CompletionRequest) (llm.CompletionResponse, error) {
	system, messages, err := convertMessages(in.Messages)
	if err != nil {
		return llm.CompletionResponse{}, err
	}

	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}
	if in.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(in.Temperature))
	}
	if len(in.Tools) > 0 {
		params.Tools = convertTools(in.Tools)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("anthropic message request failed: %w", err)
	}

	out := llm.CompletionResponse{
		Usage: llm.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
		},
	}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.AsText().Text
		case "tool_use":
			tu := block.AsToolUse()
			var parameters map[string]any
			if len(tu.Input) > 0 {
				if err := json.Unmarshal(tu.Input, &parameters); err != nil {
					return llm.CompletionResponse{}, fmt.Errorf("failed to parse tool input for %s: %w", tu.Name, err)
				}
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:         tu.ID,
				Name:       tu.Name,
				Parameters: parameters,
			})
		}
	}

	return out, nil
}

// Stream implements the llm.Client interface. The Anthropic provider is used
// for synchronous completions only.
func (c *Client) Stream(_ context.Context, _ llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	return nil, fmt.Errorf("streaming not implemented for anthropic client")
}

// ModelName returns the model this client targets.
func (c *Client) ModelName() string {
	return c.model
}

// convertMessages splits neutral messages into system blocks and turns.
func convertMessages(messages []llm.CompletionMessage) ([]anthropic.TextBlockParam, []anthropic.MessageParam, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("message list cannot be empty")
	}

	var system []anthropic.TextBlockParam
	var turns []anthropic.MessageParam
	for i := range messages {
		msg := &messages[i]
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case llm.RoleUser:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return nil, nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}
	return system, turns, nil
}

// convertTools maps neutral tool definitions onto Anthropic tool params.
func convertTools(defs []llm.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, len(defs))
	for i := range defs {
		def := &defs[i]

		properties := make(map[string]any, len(def.InputSchema.Properties))
		for name, prop := range def.InputSchema.Properties {
			if prop != nil {
				properties[name] = propertyToSchema(prop)
			}
		}

		t := anthropic.ToolUnionParamOfTool(
			anthropic.ToolInputSchemaParam{
				Properties: properties,
				Required:   def.InputSchema.Required,
			},
			def.Name,
		)
		if def.Description != "" {
			t.OfTool.Description = anthropic.String(def.Description)
		}
		out[i] = t
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
