// Package agent binds an llm.Client to a name and a system instruction and
// runs single-shot prompts against it.
//
// An Agent is an opaque handle: callers construct it once, run prompts, and
// read the returned text. One Run issues exactly one completion request —
// there is no retry and no follow-up request regardless of what the model
// returns.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agentkit/pkg/llm"
	"agentkit/pkg/logx"
	"agentkit/pkg/metrics"
	"agentkit/pkg/transcript"
)

// Agent is a configured binding to a chat model.
type Agent struct {
	client       llm.Client
	name         string
	instructions string
	maxTokens    int
	temperature  float32
	recorder     metrics.Recorder
	transcripts  *transcript.Store
	logger       *logx.Logger
}

// Option configures an Agent at construction time.
type Option func(*Agent)

// WithName sets the agent's name.
func WithName(name string) Option {
	return func(a *Agent) { a.name = name }
}

// WithInstructions sets the agent's system instruction.
func WithInstructions(instructions string) Option {
	return func(a *Agent) { a.instructions = instructions }
}

// WithMaxTokens caps the completion size per run.
func WithMaxTokens(n int) Option {
	return func(a *Agent) { a.maxTokens = n }
}

// WithTemperature sets the sampling temperature per run.
func WithTemperature(t float32) Option {
	return func(a *Agent) { a.temperature = t }
}

// WithRecorder attaches a metrics recorder observed on every run.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *Agent) { a.recorder = r }
}

// WithTranscript attaches a transcript store appended to on every
// successful run. Append failures are logged, never returned.
func WithTranscript(s *transcript.Store) Option {
	return func(a *Agent) { a.transcripts = s }
}

// New creates an agent bound to the given client.
func New(client llm.Client, opts ...Option) *Agent {
	a := &Agent{
		client:    client,
		name:      "agent",
		maxTokens: llm.DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logx.NewLogger(a.name)
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.name
}

// RunResult is the outcome of a single prompt run.
type RunResult struct {
	RunID     string
	AgentName string
	Text      string
	Usage     llm.Usage
	Duration  time.Duration
}

// Run issues exactly one prompt and blocks until the response arrives.
// Text carries the model's content untransformed.
func (a *Agent) Run(ctx context.Context, prompt string) (*RunResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	resp, err := a.client.Complete(ctx, a.buildRequest(prompt))
	duration := time.Since(start)

	if a.recorder != nil {
		a.recorder.ObserveRun(a.name, a.client.ModelName(),
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, err == nil, duration)
	}
	if err != nil {
		return nil, fmt.Errorf("agent %s run failed: %w", a.name, err)
	}

	if a.transcripts != nil {
		rec := transcript.Record{
			RunID:            runID,
			Agent:            a.name,
			Model:            a.client.ModelName(),
			Prompt:           prompt,
			Response:         resp.Content,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}
		if err := a.transcripts.Append(ctx, rec); err != nil {
			a.logger.Warn("failed to append transcript for run %s: %v", runID, err)
		}
	}

	return &RunResult{
		RunID:     runID,
		AgentName: a.name,
		Text:      resp.Content,
		Usage:     resp.Usage,
		Duration:  duration,
	}, nil
}

// RunStream issues one prompt and returns the provider's chunk stream.
func (a *Agent) RunStream(ctx context.Context, prompt string) (<-chan llm.StreamChunk, error) {
	ch, err := a.client.Stream(ctx, a.buildRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("agent %s stream failed: %w", a.name, err)
	}
	return ch, nil
}

// buildRequest assembles the one completion request a run issues.
func (a *Agent) buildRequest(prompt string) llm.CompletionRequest {
	var messages []llm.CompletionMessage
	if a.instructions != "" {
		messages = append(messages, llm.NewSystemMessage(a.instructions))
	}
	messages = append(messages, llm.NewUserMessage(prompt))

	return llm.CompletionRequest{
		Messages:    messages,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	}
}
