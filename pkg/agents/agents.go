// Package agents implements the two-stage retrieval pipeline: a planner
// that turns a user request into one retrieval tool call, and a synthesizer
// that answers from the retrieved context.
package agents

import (
	"context"
	"fmt"

	"agentkit/pkg/llm"
	"agentkit/pkg/logx"
	"agentkit/pkg/prompts"
)

// PlannerAgent orchestrates the retrieval tool call.
type PlannerAgent struct {
	client llm.Client
	tool   *VectorSearchTool
	logger *logx.Logger
}

// NewPlannerAgent creates a planner over the given client and search tool.
func NewPlannerAgent(client llm.Client, tool *VectorSearchTool) *PlannerAgent {
	return &PlannerAgent{
		client: client,
		tool:   tool,
		logger: logx.NewLogger("planner"),
	}
}

// Run asks the model to plan one retrieval call, executes it, and returns
// the formatted search results.
func (a *PlannerAgent) Run(ctx context.Context, userQuery string, nearestNeighbors int) (string, error) {
	req := llm.NewCompletionRequest([]llm.CompletionMessage{
		llm.NewSystemMessage(prompts.PlannerSystemPrompt),
		llm.NewUserMessage(prompts.PlannerUserPrompt(userQuery, nearestNeighbors)),
	})
	req.Tools = []llm.ToolDefinition{a.tool.Definition()}

	resp, err := a.client.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("planner failed: %w", err)
	}

	call, err := extractToolCall(resp)
	if err != nil {
		return "", err
	}
	if call.Name != prompts.ToolName {
		return "", fmt.Errorf("unexpected tool called: %s", call.Name)
	}

	query, ok := call.Parameters["query"].(string)
	if !ok || query == "" {
		return "", fmt.Errorf("query argument missing or invalid")
	}

	k := nearestNeighbors
	if kVal, ok := call.Parameters["nearestNeighbors"].(float64); ok {
		k = int(kVal)
	}

	a.logger.Debug("planned search: query=%q k=%d", query, k)

	results, err := a.tool.Execute(ctx, query, k)
	if err != nil {
		return "", fmt.Errorf("search tool execution failed: %w", err)
	}
	return results, nil
}

// SynthesizerAgent generates the final answer from retrieved context.
type SynthesizerAgent struct {
	client llm.Client
	logger *logx.Logger
}

// NewSynthesizerAgent creates a synthesizer over the given client.
func NewSynthesizerAgent(client llm.Client) *SynthesizerAgent {
	return &SynthesizerAgent{
		client: client,
		logger: logx.NewLogger("synthesizer"),
	}
}

// Run answers the user query from the retrieved context, without tools.
func (a *SynthesizerAgent) Run(ctx context.Context, userQuery, retrievedContext string) (string, error) {
	a.logger.Debug("context size: %d characters", len(retrievedContext))

	req := llm.NewCompletionRequest([]llm.CompletionMessage{
		llm.NewSystemMessage(prompts.SynthesizerSystemPrompt),
		llm.NewUserMessage(prompts.SynthesizerUserPrompt(userQuery, retrievedContext)),
	})

	resp, err := a.client.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("synthesizer failed: %w", err)
	}
	return resp.Content, nil
}

// extractToolCall returns the single tool call a planner response must carry.
func extractToolCall(resp llm.CompletionResponse) (llm.ToolCall, error) {
	if len(resp.ToolCalls) == 0 {
		return llm.ToolCall{}, fmt.Errorf("planner response contains no tool call")
	}
	if len(resp.ToolCalls) > 1 {
		return llm.ToolCall{}, fmt.Errorf("planner response contains %d tool calls, want 1", len(resp.ToolCalls))
	}
	return resp.ToolCalls[0], nil
}
