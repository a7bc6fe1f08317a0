// Package llm talks to the hosted language models that write lessons and
// pronunciation tips. Every vendor SDK sits behind Provider, and the
// cross-cutting behavior (timeouts, retries, event logging) is layered on
// as Provider decorators by NewProvider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends req and returns the model's output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is the conversation. Lingo always sends a single user turn.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode and validates the reply.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default in place
	// except for OpenAI-compatible APIs, which treat it literally.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is the JSON structure expected from the LLM. Declare schemas as
// package-level pointers; the compiled validator is cached on first use.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "daily-lesson".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish applies the checks every vendor shares once a reply is decoded:
// truncation, markdown fences some models wrap JSON in, and the schema.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if req.Schema == nil {
		return resp, nil
	}
	resp.Content = stripFence(resp.Content)
	if err := req.Schema.validate(resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}

// stripFence removes a ```json ... ``` wrapper around content.
func stripFence(content json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(content)
	if !bytes.HasPrefix(b, []byte("```")) {
		return content
	}
	b = b[3:]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return json.RawMessage(bytes.TrimSpace(b))
}
