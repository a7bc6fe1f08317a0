package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. It serves queued responses in
// FIFO order, then falls back to its responder, and records every request.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	responder func(Request) MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
// Once they run out, Generate fails with ErrProviderUnavailable.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// WithResponder sets the function that answers requests once the queue
// is empty.
func (m *MockProvider) WithResponder(fn func(Request) MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = fn
	return m
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.responder != nil:
		resp = m.responder(req)
	default:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	m.mu.Unlock()

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: stopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
