// Package prompts holds the fixed system prompts and tool metadata used by
// the planner/synthesizer pipeline.
package prompts

import "fmt"

// Tool metadata for the retrieval tool exposed to the planner.
const (
	ToolName        = "vector_search"
	ToolDescription = "Search the document index for items matching a natural language query"
)

// PlannerSystemPrompt instructs the planner to translate the user request
// into exactly one retrieval tool call.
const PlannerSystemPrompt = `You are a planning assistant. Given a user request, call the ` + ToolName + ` tool exactly once with a natural language query that captures the request and the number of results to retrieve. Do not answer the request yourself.`

// SynthesizerSystemPrompt instructs the synthesizer to answer strictly from
// the retrieved context.
const SynthesizerSystemPrompt = `You are a recommendation assistant. Answer the user's request using only the retrieved documents provided. Mention the documents you drew on. If the documents do not answer the request, say so.`

// PlannerUserPrompt builds the planner's user message.
func PlannerUserPrompt(query string, nearestNeighbors int) string {
	return fmt.Sprintf("Search for documents matching this request: %q. Use nearestNeighbors=%d.", query, nearestNeighbors)
}

// SynthesizerUserPrompt builds the synthesizer's user message from the
// original request and the retrieved context.
func SynthesizerUserPrompt(query, context string) string {
	return fmt.Sprintf("Request: %s\n\nRetrieved documents:\n%s", query, context)
}
