package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient provides a controllable implementation of Client for testing.
// It replays scripted responses/errors in order and records every request
// it receives.
type MockClient struct {
	mu            sync.Mutex
	responses     []CompletionResponse
	responseIndex int
	errors        []error
	errorIndex    int
	requests      []CompletionRequest
	model         string
}

// NewMockClient creates a mock client with predefined responses.
func NewMockClient(responses []CompletionResponse, errors []error) *MockClient {
	return &MockClient{
		responses: responses,
		errors:    errors,
		model:     "mock-model",
	}
}

// Complete returns the next predefined response or error.
func (m *MockClient) Complete(_ context.Context, in CompletionRequest) (CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, in)

	if m.errorIndex < len(m.errors) && m.errors[m.errorIndex] != nil {
		err := m.errors[m.errorIndex]
		m.errorIndex++
		return CompletionResponse{}, err
	}

	if m.responseIndex >= len(m.responses) {
		return CompletionResponse{}, fmt.Errorf("mock client: no more responses")
	}

	resp := m.responses[m.responseIndex]
	m.responseIndex++
	return resp, nil
}

// Stream returns a channel that replays the next predefined response as a
// single chunk.
func (m *MockClient) Stream(_ context.Context, in CompletionRequest) (<-chan StreamChunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, in)

	if m.errorIndex < len(m.errors) && m.errors[m.errorIndex] != nil {
		err := m.errors[m.errorIndex]
		m.errorIndex++
		return nil, err
	}

	if m.responseIndex >= len(m.responses) {
		return nil, fmt.Errorf("mock client: no more responses")
	}

	resp := m.responses[m.responseIndex]
	m.responseIndex++

	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		ch <- StreamChunk{Content: resp.Content, Done: true}
	}()
	return ch, nil
}

// ModelName returns the mock model name.
func (m *MockClient) ModelName() string {
	return m.model
}

// Requests returns a copy of every request the mock has received.
func (m *MockClient) Requests() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
