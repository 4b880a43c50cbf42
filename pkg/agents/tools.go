package agents

import (
	"context"
	"fmt"
	"strings"

	"agentkit/pkg/llm"
	"agentkit/pkg/prompts"
	"agentkit/pkg/vectorstore"
)

// VectorSearchTool embeds a query and retrieves the nearest documents from
// a vector index.
type VectorSearchTool struct {
	embedder llm.Embedder
	store    vectorstore.Searcher
}

// NewVectorSearchTool creates a search tool over the given embedder and index.
func NewVectorSearchTool(embedder llm.Embedder, store vectorstore.Searcher) *VectorSearchTool {
	return &VectorSearchTool{embedder: embedder, store: store}
}

// Execute embeds the query, searches the index, and formats the results for
// the synthesizer.
func (t *VectorSearchTool) Execute(ctx context.Context, query string, nearestNeighbors int) (string, error) {
	vector, err := t.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}

	results, err := t.store.Search(ctx, vector, nearestNeighbors)
	if err != nil {
		return "", fmt.Errorf("vector search failed: %w", err)
	}

	formatted := make([]string, 0, len(results))
	for i, result := range results {
		formatted = append(formatted, fmt.Sprintf("Document #%d (%s, score %.6f):\n%s",
			i+1, result.Document.ID, result.Score, result.Document.Content))
	}
	return strings.Join(formatted, "\n\n"), nil
}

// Definition returns the tool definition exposed to the planner.
func (t *VectorSearchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        prompts.ToolName,
		Description: prompts.ToolDescription,
		InputSchema: llm.ToolInputSchema{
			Properties: map[string]*llm.Property{
				"query": {
					Type:        "string",
					Description: "Natural language search query describing the desired documents",
				},
				"nearestNeighbors": {
					Type:        "integer",
					Description: "Number of results to return (1-20)",
				},
			},
			Required: []string{"query", "nearestNeighbors"},
		},
	}
}
